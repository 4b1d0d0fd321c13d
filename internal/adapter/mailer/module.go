package mailer

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/mysticmart/internal/config"
)

// Module exposes the email sender to the fx graph.
var Module = fx.Provide(newSender)

type senderParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newSender(p senderParams) (Sender, error) {
	if p.Config.SMTPHost == "" {
		return NewNopSender(p.Logger), nil
	}
	return NewSMTPSender(SMTPConfig{
		Host:     p.Config.SMTPHost,
		Port:     p.Config.SMTPPort,
		Username: p.Config.SMTPUsername,
		Password: p.Config.SMTPPassword,
		From:     p.Config.SMTPFrom,
	}, p.Logger)
}
