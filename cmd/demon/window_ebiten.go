//go:build ebiten

package main

import (
	"github.com/dshills/demon/internal/app"
	"github.com/dshills/demon/internal/config"
	"github.com/dshills/demon/internal/driver/ebiten"
)

func windowDriver(config.Settings) (app.Driver, error) {
	return ebiten.New("Demon", 1280, 720), nil
}
