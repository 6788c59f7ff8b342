package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cyclopcam/logs"

	"github.com/ironsheep/chuckvision/internal/acceptance"
	"github.com/ironsheep/chuckvision/internal/batch"
	"github.com/ironsheep/chuckvision/internal/config"
)

func runCompare(ctx context.Context, log logs.Log, cfg config.Config, datasetPath, imageDir, outDir string, workers int) error {
	dataset, err := acceptance.LoadDataset(datasetPath)
	if err != nil {
		return err
	}
	paths, err := batch.Discover(imageDir)
	if err != nil {
		return err
	}
	analyzer, err := newAnalyzer(log, cfg)
	if err != nil {
		return err
	}
	log.Infof("Comparing %d images against %d annotations", len(paths), len(dataset.Frames))

	items, err := batch.Run(ctx, analyzer, paths, workers, log)
	if err != nil {
		return err
	}
	report := acceptance.BuildReport(dataset, batch.Frames(items), log)
	if report.Unmatched > 0 {
		log.Warnf("%d detected beanbags had no annotated bag of their color", report.Unmatched)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	if err := writeCSV(filepath.Join(outDir, "pointCompare.csv"), func(f *os.File) error {
		return acceptance.WritePointCSV(f, report.Points)
	}); err != nil {
		return err
	}
	if err := writeCSV(filepath.Join(outDir, "scoreCompare.csv"), func(f *os.File) error {
		return acceptance.WriteScoreCSV(f, report.Scores)
	}); err != nil {
		return err
	}
	return acceptance.WriteSummary(os.Stdout, acceptance.Summarize(report))
}

func writeCSV(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
