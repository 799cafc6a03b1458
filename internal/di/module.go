package di

import (
	"go.uber.org/fx"

	"github.com/rvleeuwen/laadscan/internal/adapter/mailer"
	"github.com/rvleeuwen/laadscan/internal/app"
	"github.com/rvleeuwen/laadscan/internal/config"
	"github.com/rvleeuwen/laadscan/internal/logger"
	"github.com/rvleeuwen/laadscan/internal/pkg/auth"
	"github.com/rvleeuwen/laadscan/internal/server/http/handlers"
	"github.com/rvleeuwen/laadscan/internal/server/http/router"
	"github.com/rvleeuwen/laadscan/internal/storage/postgres"
	"github.com/rvleeuwen/laadscan/internal/usecase"
	"github.com/rvleeuwen/laadscan/internal/worker"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		mailer.Module,
		usecase.Module,
		fx.Provide(func(client mailer.Client) usecase.ResetMailer { return client }),
		fx.Provide(func(facade *app.WarehouseFacade) handlers.WarehouseFacade { return facade }),
		fx.Provide(func(processor *worker.ImportProcessor) handlers.ImportQueue { return processor }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
