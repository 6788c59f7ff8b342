//go:build !opencv

package main

import (
	"github.com/ironsheep/chuckvision/internal/config"
	"github.com/ironsheep/chuckvision/internal/estimate"
)

const backendName = "pure-go"

func backendOptions(config.Config) []estimate.Option {
	return nil
}
