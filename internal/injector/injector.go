//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/behavior/internal/app"
	"github.com/zeusync/behavior/internal/config"
)

var RuntimeSet = wire.NewSet(
	app.ProvideLogger,
	app.ProvideEventBus,
	app.ProvideHub,
	app.ProvideManager,
	app.New,
)

func InitializeRuntime(cfg *config.Config) (*app.Runtime, error) {
	wire.Build(RuntimeSet)
	return nil, nil
}
