package components

import (
	"courtside/internal/usecase/commands"
	"courtside/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		queries.NewAvailabilityQueries,
		queries.NewReservationQueries,
		commands.NewReservationCommands,
		commands.NewSweeperCommands,
	),
)
