// Command chuckvision estimates the state of cornhole games from still images.
//
//	chuckvision analyze -i 0001.jpg -i 0002.jpg
//	chuckvision analyze --dir dataset/img --out frames.json --render overlays
//	chuckvision compare --dataset dataset/dataSet.json --images dataset/img --out report
//	chuckvision calibrate --image bag.png --alpha 5
//	chuckvision serve
//
// JSON results and the MCP protocol go to stdout; logging goes to stderr.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/akamensky/argparse"
	"github.com/cyclopcam/logs"

	"github.com/ironsheep/chuckvision/internal/config"
	"github.com/ironsheep/chuckvision/internal/logging"
	"github.com/ironsheep/chuckvision/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	parser := argparse.NewParser("chuckvision", "Cornhole state estimation from images")
	configFile := parser.String("c", "config", &argparse.Options{Help: "YAML config file (defaults are used for missing keys)", Default: ""})
	verbose := parser.Flag("v", "verbose", &argparse.Options{Help: "Log per-image detection decisions", Default: false})

	analyzeCmd := parser.NewCommand("analyze", "Analyze images and print their annotations as JSON")
	analyzeImages := analyzeCmd.StringList("i", "image", &argparse.Options{Help: "Image file (repeatable)"})
	analyzeDir := analyzeCmd.String("d", "dir", &argparse.Options{Help: "Analyze every image in this directory", Default: ""})
	analyzeWorkers := analyzeCmd.Int("w", "workers", &argparse.Options{Help: "Concurrent images (0 = one per CPU)", Default: 0})
	analyzeOut := analyzeCmd.String("o", "out", &argparse.Options{Help: "Write JSON here instead of stdout", Default: ""})
	analyzeRender := analyzeCmd.String("r", "render", &argparse.Options{Help: "Write annotated PNGs into this directory", Default: ""})
	analyzeDetailed := analyzeCmd.Flag("", "detailed", &argparse.Options{Help: "Also draw raw contours and Hough candidates", Default: false})

	compareCmd := parser.NewCommand("compare", "Compare detections with a ground-truth dataset")
	compareDataset := compareCmd.String("", "dataset", &argparse.Options{Help: "Ground-truth JSON", Required: true})
	compareImages := compareCmd.String("", "images", &argparse.Options{Help: "Directory of dataset images", Required: true})
	compareOut := compareCmd.String("o", "out", &argparse.Options{Help: "Directory for pointCompare.csv and scoreCompare.csv", Default: "."})
	compareWorkers := compareCmd.Int("w", "workers", &argparse.Options{Help: "Concurrent images (0 = one per CPU)", Default: 0})

	calibrateCmd := parser.NewCommand("calibrate", "Print HSV bounds for an image, e.g. a crop of one beanbag")
	calibrateImage := calibrateCmd.String("i", "image", &argparse.Options{Help: "Path to the image", Required: true})
	calibrateAlpha := calibrateCmd.Float("a", "alpha", &argparse.Options{Help: "Error tolerance [0, 50]", Default: 5.0})
	calibrateRegion := calibrateCmd.String("", "region", &argparse.Options{Help: "Only sample x1,y1,x2,y2", Default: ""})

	serveCmd := parser.NewCommand("serve", "Run the MCP tool server on stdin/stdout")
	versionCmd := parser.NewCommand("version", "Print version information")

	err := parser.Parse(os.Args)
	if err != nil {
		fmt.Fprint(os.Stderr, parser.Usage(err))
		os.Exit(1)
	}

	if versionCmd.Happened() {
		fmt.Printf("chuckvision %s (%s backend)\n", Version, backendName)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}

	logger := logging.New(os.Stderr, *verbose)

	cfg := config.Default()
	if *configFile != "" {
		cfg, err = config.Load(*configFile)
		if err != nil {
			logger.Errorf("%v", err)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case analyzeCmd.Happened():
		err = runAnalyze(ctx, logger, cfg, analyzeOptions{
			images:   *analyzeImages,
			dir:      *analyzeDir,
			workers:  *analyzeWorkers,
			out:      *analyzeOut,
			render:   *analyzeRender,
			detailed: *analyzeDetailed,
		})
	case compareCmd.Happened():
		err = runCompare(ctx, logger, cfg, *compareDataset, *compareImages, *compareOut, *compareWorkers)
	case calibrateCmd.Happened():
		err = runCalibrate(os.Stdout, *calibrateImage, *calibrateRegion, *calibrateAlpha)
	case serveCmd.Happened():
		err = runServe(logger, cfg)
	}
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func runServe(log logs.Log, cfg config.Config) error {
	server.Version = Version
	srv, err := server.New(cfg, log, backendOptions(cfg)...)
	if err != nil {
		return err
	}
	log.Infof("chuckvision MCP server %v (%v backend)", Version, backendName)
	return srv.Run()
}
