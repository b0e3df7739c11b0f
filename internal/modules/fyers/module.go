package fyers

import (
	"ema_scanner/internal/modules/fyers/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("fyers",
		fx.Provide(
			service.NewFactory,
		),
	)
}
