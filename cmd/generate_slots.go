package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"rinkbook/internal/infra/db"
	"rinkbook/internal/infra/notification"
	"rinkbook/internal/infra/payment"
	"rinkbook/internal/infra/uow"
	"rinkbook/internal/pkg/clock"
	"rinkbook/internal/pkg/config"
	"rinkbook/internal/usecase/commands"

	"github.com/spf13/cobra"
)

func newGenerateSlotsCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "generate-slots",
		Short: "Materialize bookable slots for every surface over the coming days",
		Long: "Expands each surface's hours of operation into hourly slots, from today " +
			"through the horizon. Safe to re-run: slots that already exist are skipped.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if days <= 0 {
				days = cfg.Booking.GenerateDaysAhead
			}

			pool, cleanup, err := db.Connect(cfg.DB)
			if err != nil {
				return err
			}
			defer cleanup()

			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
			slots := commands.NewSlotCommands(
				uow.NewPostgresUoW(pool),
				payment.NewStripeGateway(cfg.Stripe),
				notification.NewLogNotifier(logger),
				clock.NewRealClock(),
				cfg.Booking,
			)

			created, err := slots.GenerateAhead(cmd.Context(), days)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created %d slots over %d days\n", created, days)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "days ahead to generate (default from BOOKING_GENERATE_DAYS_AHEAD)")
	return cmd
}
