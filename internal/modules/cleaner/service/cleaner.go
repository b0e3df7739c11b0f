package service

import (
	"context"
	"time"

	"ema_scanner/internal/modules/store/pg"
	"ema_scanner/pkg/logger"
)

// Cleaner раз в сутки зачищает брокерские токены: Fyers выдаёт их на 24 часа,
// держать протухшие в базе нет смысла. Живёт отдельно от движка,
// в его внутренности не лезет.
type Cleaner struct {
	users *pg.Users
	hour  int
	loc   *time.Location
}

func NewCleaner(users *pg.Users, hour int, tz string) *Cleaner {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		logger.Warn("cleaner: unknown timezone %q, using UTC", tz)
		loc = time.UTC
	}
	return &Cleaner{users: users, hour: hour, loc: loc}
}

// nextRun — ближайший настенный час запуска в настроенной таймзоне.
func (c *Cleaner) nextRun(now time.Time) time.Time {
	local := now.In(c.loc)
	run := time.Date(local.Year(), local.Month(), local.Day(), c.hour, 0, 0, 0, c.loc)
	if !run.After(local) {
		run = run.AddDate(0, 0, 1)
	}
	return run
}

func (c *Cleaner) wipe(ctx context.Context) {
	wiped, err := c.users.WipeAccessTokens(ctx)
	if err != nil {
		logger.Error("token cleanup failed: %v", err)
		return
	}
	logger.Info("token cleanup: cleared access tokens for %d users", wiped)
}

// Run крутится до отмены контекста.
func (c *Cleaner) Run(ctx context.Context) {
	for {
		next := c.nextRun(time.Now())
		logger.Info("token cleanup scheduled at %s", next.Format(time.RFC3339))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			c.wipe(ctx)
		}
	}
}
