package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cyclopcam/logs"

	"github.com/ironsheep/chuckvision/internal/batch"
	"github.com/ironsheep/chuckvision/internal/config"
	"github.com/ironsheep/chuckvision/internal/estimate"
	"github.com/ironsheep/chuckvision/internal/imaging"
)

type analyzeOptions struct {
	images   []string
	dir      string
	workers  int
	out      string
	render   string
	detailed bool
}

func newAnalyzer(log logs.Log, cfg config.Config, extra ...estimate.Option) (*estimate.Analyzer, error) {
	opts := append([]estimate.Option{estimate.WithLogger(log)}, backendOptions(cfg)...)
	return estimate.New(cfg, append(opts, extra...)...)
}

// collectPaths joins explicit images with the images found in dir.
func collectPaths(images []string, dir string) ([]string, error) {
	paths := append([]string{}, images...)
	if dir != "" {
		found, err := batch.Discover(dir)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	if len(paths) == 0 {
		return nil, errors.New("no images given: use --image or --dir")
	}
	return paths, nil
}

func runAnalyze(ctx context.Context, log logs.Log, cfg config.Config, o analyzeOptions) error {
	paths, err := collectPaths(o.images, o.dir)
	if err != nil {
		return err
	}

	var extra []estimate.Option
	if o.render != "" {
		if err := os.MkdirAll(o.render, 0o755); err != nil {
			return err
		}
		extra = append(extra, estimate.WithOverlay(o.detailed))
	}
	analyzer, err := newAnalyzer(log, cfg, extra...)
	if err != nil {
		return err
	}

	items, err := batch.Run(ctx, analyzer, paths, o.workers, log)
	if err != nil {
		return err
	}

	failed := 0
	for _, it := range items {
		if it.Err != nil {
			failed++
			continue
		}
		log.Infof("%v: score %+d (%d beanbags, hole via %v)",
			it.Result.Frame.Reference, it.Result.Score, len(it.Result.Frame.BeanBags), it.Result.Phase)
		if it.Result.Annotated != nil {
			name := strings.TrimSuffix(filepath.Base(it.Path), filepath.Ext(it.Path)) + ".png"
			if err := imaging.Save(it.Result.Annotated, filepath.Join(o.render, name)); err != nil {
				return err
			}
		}
	}

	if err := writeFrames(o.out, batch.Frames(items)); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d images could not be analyzed", failed, len(items))
	}
	return nil
}

// writeFrames writes frames as a JSON array to path, or to stdout when path is
// empty.
func writeFrames(path string, frames []estimate.Frame) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(frames)
}
