package main

import (
	"context"
	"log"

	"ema_scanner/internal/modules/alerts"
	"ema_scanner/internal/modules/cleaner"
	"ema_scanner/internal/modules/config"
	"ema_scanner/internal/modules/fyers"
	"ema_scanner/internal/modules/health"
	"ema_scanner/internal/modules/postgres"
	"ema_scanner/internal/modules/scanner"
	"ema_scanner/internal/modules/store"
	"ema_scanner/internal/modules/web"
	"ema_scanner/pkg/logger"
	"ema_scanner/pkg/tracing"

	"go.uber.org/fx"
)

func main() {
	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}

	app := fx.New(
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
		),
		config.Module(),
		postgres.Module(),
		store.Module(),
		fyers.Module(),
		scanner.Module(),
		alerts.Module(),
		web.Module(),
		health.Module(),
		cleaner.Module(),

		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config) error {
			if cfg.Jaeger.Host == "" {
				return nil
			}
			_, closeTracer, err := tracing.InitTracer(tracing.Config{
				Host: cfg.Jaeger.Host,
				Port: cfg.Jaeger.Port,
			})
			if err != nil {
				return err
			}
			lc.Append(fx.Hook{
				OnStop: func(ctx context.Context) error {
					closeTracer()
					return nil
				},
			})
			return nil
		}),
	)
	app.Run()
}
