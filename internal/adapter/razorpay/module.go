package razorpay

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/mysticmart/internal/config"
)

// Module exposes the payment gateway client to the fx graph.
var Module = fx.Provide(newGateway)

type gatewayParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newGateway(p gatewayParams) (Gateway, error) {
	if p.Config.RazorpayKeySecret == "" {
		p.Logger.Warn("razorpay secret not configured, payment verification disabled")
	}
	return NewHTTPClient(p.Config.RazorpayAPIURL, p.Config.RazorpayKeyID, p.Config.RazorpayKeySecret, p.Logger)
}
