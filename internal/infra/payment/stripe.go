package payment

import (
	"context"

	"rinkbook/internal/pkg/config"
	"rinkbook/internal/pkg/errs"
	"rinkbook/internal/usecase/commands"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
	"github.com/stripe/stripe-go/v79/refund"
)

// StripeGateway charges through Stripe. When the facility carries a
// Connect account the intent routes funds there as a destination charge.
type StripeGateway struct {
	cfg config.StripeConfig
}

func NewStripeGateway(cfg config.StripeConfig) commands.PaymentGateway {
	stripe.Key = cfg.SecretKey
	return &StripeGateway{cfg: cfg}
}

func (g *StripeGateway) Configured() bool {
	return g.cfg.SecretKey != ""
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amountCents int64, destinationAccount string, metadata map[string]string) (*commands.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}
	if destinationAccount != "" {
		params.TransferData = &stripe.PaymentIntentTransferDataParams{
			Destination: stripe.String(destinationAccount),
		}
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, errs.Wrap(err, "failed to create payment intent")
	}
	return &commands.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
	}, nil
}

func (g *StripeGateway) Refund(ctx context.Context, paymentIntentID string) error {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntentID),
	}
	params.Context = ctx

	if _, err := refund.New(params); err != nil {
		return errs.Wrap(err, "failed to refund payment intent")
	}
	return nil
}
