package notify

import (
	"strings"
	"testing"
	"time"

	"ema_scanner/internal/models"
)

func TestFormatScanSkipsEmpty(t *testing.T) {
	scan := &models.WatchlistScan{Timeframe: "5m"}
	if msg, ok := FormatScan(scan); ok || msg != "" {
		t.Fatalf("empty scan must not produce a message, got %q", msg)
	}
}

func TestFormatScanListsEvents(t *testing.T) {
	ts := time.Date(2026, 2, 2, 10, 30, 0, 0, time.UTC)
	scan := &models.WatchlistScan{
		Timeframe: "5m",
		Events: []models.CrossoverEvent{
			{Timestamp: ts, Symbol: "NSE:SBIN-EQ", Close: 812.4, EMA10: 811.9, EMA20: 811.85, Direction: models.DirectionPositive},
			{Timestamp: ts, Symbol: "NSE:TCS-EQ", Close: 4100, EMA10: 4101.2, EMA20: 4102.5, Direction: models.DirectionNegative},
		},
		Errors: []models.SymbolError{{Symbol: "NSE:BOGUS", Kind: "UPSTREAM_FETCH_ERROR"}},
	}

	msg, ok := FormatScan(scan)
	if !ok {
		t.Fatal("expected a message")
	}
	for _, want := range []string{"NSE:SBIN-EQ", "NSE:TCS-EQ", "812.40", "📈", "📉", "ошибок по символам: 1"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestNilTelegramIsSafe(t *testing.T) {
	var tg *Telegram
	tg.Send("должно молча проглотиться")
	tg.Sendf("и это тоже: %d", 42)
}
