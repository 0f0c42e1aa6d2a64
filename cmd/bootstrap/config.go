package bootstrap

import (
	"courtside/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.VenueConfig {
			return cfg.Venue
		},
	),
)
