package mailer

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/rvleeuwen/laadscan/internal/config"
)

// Module exposes the mail client implementation to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) Client {
	if p.Config.SMTPHost == "" {
		return NewLogClient(p.Logger)
	}
	return NewSMTPClient(
		p.Config.SMTPHost,
		p.Config.SMTPPort,
		p.Config.SMTPFrom,
		p.Config.SMTPUsername,
		p.Config.SMTPPassword,
		p.Config.PublicBaseURL,
		p.Logger,
	)
}
