//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"stock-data/internal/app"
)

// InitializeApp builds App (Config + Saver) via Wire.
func InitializeApp() (*App, error) {
	wire.Build(
		app.ProvideConfig,
		app.ProvideSaver,
		wire.Struct(new(App), "Config", "Saver"),
	)
	return nil, nil
}
