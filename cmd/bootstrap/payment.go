package bootstrap

import (
	"cardshop/internal/infra/payment"
	"cardshop/internal/pkg/config"
	"cardshop/internal/usecase/commands"

	"go.uber.org/fx"
)

var PaymentModule = fx.Module("payment",
	fx.Provide(
		fx.Annotate(
			payment.NewHTTPGateway,
			fx.As(new(commands.PaymentGateway)),
		),
		fx.Annotate(
			NewSignatureVerifier,
			fx.As(new(commands.SignatureVerifier)),
		),
	),
)

func NewSignatureVerifier(cfg config.PaymentConfig) *payment.Verifier {
	return payment.NewVerifier(cfg.WebhookSecret, cfg.SignatureMaxSkew)
}
