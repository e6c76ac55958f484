package components

import (
	"cardshop/internal/pkg/clock"
	"cardshop/internal/usecase"
	"cardshop/internal/usecase/commands"
	"cardshop/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationUseCase,
		commands.NewCheckoutUseCase,
		commands.NewPaymentEventUseCase,
		commands.NewOrderUseCase,
		commands.NewSweeperUseCase,
		commands.NewNotificationUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewInventoryQueries,
		queries.NewReservationQueries,
		queries.NewOrderQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
