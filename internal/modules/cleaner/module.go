package cleaner

import (
	"context"

	"ema_scanner/internal/modules/cleaner/service"
	"ema_scanner/internal/modules/config"
	"ema_scanner/internal/modules/store/pg"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("cleaner",
		fx.Provide(
			func(cfg *config.Config, users *pg.Users) *service.Cleaner {
				return service.NewCleaner(users, cfg.TokenWipeHour, cfg.TokenWipeTZ)
			},
		),

		fx.Invoke(func(lc fx.Lifecycle, appCtx context.Context, c *service.Cleaner) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					go c.Run(appCtx)
					return nil
				},
			})
		}),
	)
}
