package components

import (
	"rinkbook/internal/domain/booking"
	"rinkbook/internal/infra/notification"
	"rinkbook/internal/infra/payment"
	"rinkbook/internal/pkg/clock"
	"rinkbook/internal/usecase"
	"rinkbook/internal/usecase/commands"
	"rinkbook/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
	usecaseValidatorsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	payment.NewStripeGateway,
	notification.NewLogNotifier,
	func() booking.CancellationPolicy {
		return booking.AllowAllPolicy{}
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewBookingCommands,
		commands.NewSlotCommands,
		commands.NewPaymentCommands,
		// The availability query side asks the slot command side to
		// materialize a day before reading it.
		func(sc commands.SlotCommands) queries.SlotEnsurer {
			return sc
		},
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAvailabilityQueries,
		queries.NewBookingQueries,
		queries.NewFacilityQueries,
		queries.NewUserQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
