package service

import (
	"os"
	"testing"
	"time"

	"ema_scanner/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestNextRun(t *testing.T) {
	c := NewCleaner(nil, 3, "Asia/Kolkata")
	ist, _ := time.LoadLocation("Asia/Kolkata")

	// до трёх ночи — запуск сегодня
	now := time.Date(2026, 8, 31, 1, 30, 0, 0, ist)
	next := c.nextRun(now)
	want := time.Date(2026, 8, 31, 3, 0, 0, 0, ist)
	if !next.Equal(want) {
		t.Fatalf("nextRun = %s, want %s", next, want)
	}

	// после трёх — завтра
	now = time.Date(2026, 8, 31, 9, 0, 0, 0, ist)
	next = c.nextRun(now)
	want = time.Date(2026, 9, 1, 3, 0, 0, 0, ist)
	if !next.Equal(want) {
		t.Fatalf("nextRun = %s, want %s", next, want)
	}

	// ровно в час запуска — переносим на завтра, не гоняем дважды
	now = time.Date(2026, 8, 31, 3, 0, 0, 0, ist)
	next = c.nextRun(now)
	if !next.Equal(want) {
		t.Fatalf("nextRun at boundary = %s, want %s", next, want)
	}
}

func TestNewCleanerBadTimezoneFallsBackToUTC(t *testing.T) {
	c := NewCleaner(nil, 3, "Mars/Olympus")
	if c.loc != time.UTC {
		t.Fatalf("loc = %v, want UTC", c.loc)
	}
}
