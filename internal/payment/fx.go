package payment

import (
	"github.com/handyheartslabs/handyhearts/internal/config"
	"github.com/handyheartslabs/handyhearts/internal/payment/adapters/stripe"
	"github.com/handyheartslabs/handyhearts/internal/payment/domain"
	"github.com/handyheartslabs/handyhearts/internal/payment/repository"
	"github.com/handyheartslabs/handyhearts/internal/payment/service"
	"github.com/handyheartslabs/handyhearts/internal/payment/webhook"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(newStripeAdapter),
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
	fx.Provide(webhook.New),
)

func newStripeAdapter(cfg config.Config) domain.Adapter {
	return stripe.New(cfg.Stripe.APIKey, cfg.Stripe.WebhookSecret).
		WithSignatureTolerance(cfg.Stripe.SignatureTolerance)
}
