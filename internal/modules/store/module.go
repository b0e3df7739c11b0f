package store

import (
	"context"

	"ema_scanner/internal/modules/store/pg"
	"ema_scanner/pkg/db"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("store",
		fx.Provide(
			pg.NewUsers,
			pg.NewWatchlists,
			pg.NewScans,
		),
		fx.Invoke(func(lc fx.Lifecycle, m *db.PgTxManager) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					return pg.Bootstrap(ctx, m)
				},
			})
		}),
	)
}
