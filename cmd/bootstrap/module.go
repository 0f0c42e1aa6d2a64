package bootstrap

import (
	"courtside/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	VenueModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)
