//go:build opencv

package main

import (
	"github.com/ironsheep/chuckvision/internal/config"
	"github.com/ironsheep/chuckvision/internal/estimate"
	"github.com/ironsheep/chuckvision/internal/opencv"
)

const backendName = "opencv"

func backendOptions(cfg config.Config) []estimate.Option {
	return []estimate.Option{
		estimate.WithHSVConverter(opencv.ToHSV),
		estimate.WithContourFinder(opencv.ContourFinder{}),
		estimate.WithCircleDetector(opencv.NewCircleDetector(cfg.HoughDetector())),
	}
}
