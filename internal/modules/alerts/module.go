package alerts

import (
	"context"
	"log"

	"ema_scanner/internal/models"
	"ema_scanner/internal/modules/config"
	"ema_scanner/internal/notify"
	"ema_scanner/pkg/logger"

	"go.uber.org/fx"
)

func newScansChan() chan *models.WatchlistScan {
	return make(chan *models.WatchlistScan, 64)
}
func asSendOnlyScans(ch chan *models.WatchlistScan) chan<- *models.WatchlistScan { return ch }

func newNotifier(cfg *config.Config) notify.Notifier {
	if cfg.Telegram.Token == "" || cfg.Telegram.ChatID == 0 {
		log.Printf("[ALERTS] telegram не настроен, алерты в stdout")
		return notify.NewStdout()
	}
	tg, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID)
	if err != nil {
		logger.Error("telegram init failed, falling back to stdout: %v", err)
		return notify.NewStdout()
	}
	return tg
}

func Module() fx.Option {
	return fx.Module("alerts",
		fx.Provide(
			newScansChan,    // chan *models.WatchlistScan
			asSendOnlyScans, // chan<- *models.WatchlistScan
			newNotifier,     // notify.Notifier
		),

		fx.Invoke(func(lc fx.Lifecycle, appCtx context.Context, n notify.Notifier, scans chan *models.WatchlistScan) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					ctx := appCtx
					go func() {
						log.Printf("[ALERTS] loop started")
						for {
							select {
							case <-ctx.Done():
								log.Printf("[ALERTS] loop stopped")
								return
							case scan, ok := <-scans:
								if !ok {
									log.Printf("[ALERTS] scans channel closed")
									return
								}
								if msg, ok := notify.FormatScan(scan); ok {
									n.Send(msg)
								}
							}
						}
					}()
					return nil
				},
			})
		}),
	)
}
