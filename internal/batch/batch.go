// Package batch analyzes many images concurrently with a bounded worker pool.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/cyclopcam/logs"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/chuckvision/internal/estimate"
)

// Analyzer is the part of estimate.Analyzer a batch needs.
type Analyzer interface {
	AnalyzeFile(path string) (*estimate.Result, error)
}

// Item is the outcome for one path. Exactly one of Result and Err is set.
type Item struct {
	Path   string
	Result *estimate.Result
	Err    error
}

// Run analyzes paths with at most workers goroutines (workers <= 0 means one
// per CPU). Items come back in input order. A failing image is recorded on its
// Item and never stops the batch; only cancellation of ctx does, in which case
// the items not yet started carry ctx's error and Run returns it.
func Run(ctx context.Context, a Analyzer, paths []string, workers int, log logs.Log) ([]Item, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	items := make([]Item, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		items[i].Path = path
		if err := gctx.Err(); err != nil {
			items[i].Err = err
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				items[i].Err = err
				return nil
			}
			res, err := a.AnalyzeFile(path)
			if err != nil {
				if log != nil {
					logs.NewPrefixLogger(log, filepath.Base(path)).Warnf("Skipping: %v", err)
				}
				items[i].Err = err
				return nil
			}
			items[i].Result = res
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return items, fmt.Errorf("batch cancelled: %w", err)
	}
	return items, nil
}

// imageExtensions are the formats the decoder registers.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// Discover lists the image files directly inside dir, sorted by name.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Frames returns the frames of the successful items, in order.
func Frames(items []Item) []estimate.Frame {
	frames := make([]estimate.Frame, 0, len(items))
	for _, it := range items {
		if it.Result != nil {
			frames = append(frames, it.Result.Frame)
		}
	}
	return frames
}
