package scanner

import (
	"time"

	"ema_scanner/internal/modules/config"
	"ema_scanner/internal/modules/scanner/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("scanner",
		fx.Provide(
			func(cfg *config.Config) *service.Scanner {
				return service.NewScanner(service.Config{
					Concurrency:  cfg.ScanConcurrency,
					FetchTimeout: cfg.FetchTimeout,
					ShortPeriod:  cfg.EMAShort,
					LongPeriod:   cfg.EMALong,
					Lookback:     time.Duration(cfg.LookbackDays) * 24 * time.Hour,
				})
			},
		),
	)
}
