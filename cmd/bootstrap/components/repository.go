package components

import (
	repo_impl "courtside/internal/infra/repository"
	"courtside/internal/usecase/commands"
	"courtside/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repo_impl.NewReservationRepository,
			fx.As(new(commands.ReservationRepository)),
		),
		fx.Annotate(
			repo_impl.NewResourceRepository,
			fx.As(new(queries.ResourceReadStore)),
		),
		fx.Annotate(
			repo_impl.NewReservationReadRepository,
			fx.As(new(queries.ReservationReadStore)),
		),
	),
)
