//go:build !ebiten

package main

import (
	"errors"

	"github.com/dshills/demon/internal/app"
	"github.com/dshills/demon/internal/config"
)

func windowDriver(config.Settings) (app.Driver, error) {
	return nil, errors.New("window driver unavailable: build with -tags ebiten")
}
