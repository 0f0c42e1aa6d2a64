package bootstrap

import (
	"courtside/internal/pkg/clock"
	"courtside/internal/pkg/config"
	"courtside/internal/pkg/venuetime"

	"go.uber.org/fx"
)

// VenueModule wires the venue's wall clock: the fixed-offset zone every
// local date computation goes through, and the clock injected so tests can
// freeze time.
var VenueModule = fx.Module("venue",
	fx.Provide(
		clock.NewRealClock,
		func(cfg config.Config) venuetime.Zone {
			return venuetime.NewZone(cfg.Venue.UTCOffsetHours)
		},
	),
)
