package web

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/fx"

	"ema_scanner/internal/modules/config"
	healthsvc "ema_scanner/internal/modules/health/service"
	"ema_scanner/internal/modules/web/service"
	"ema_scanner/pkg/logger"
)

func Module() fx.Option {
	return fx.Module("web",
		fx.Provide(
			service.NewServer,
		),

		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config, srv *service.Server, state *healthsvc.State) {
			addr := fmt.Sprintf("%s:%d", cfg.Service.Host, cfg.Service.PublicPort)
			httpSrv := &http.Server{
				Addr:              addr,
				Handler:           srv.Routes(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					ln, err := net.Listen("tcp", addr)
					if err != nil {
						return err
					}
					go func() { _ = httpSrv.Serve(ln) }()
					state.SetReady(true)
					logger.Info("dashboard listening on %s", addr)
					return nil
				},
				OnStop: func(ctx context.Context) error {
					state.SetReady(false)
					return httpSrv.Shutdown(ctx)
				},
			})
		}),
	)
}
