package service

import (
	"math"
	"testing"
	"time"

	"ema_scanner/internal/models"
)

func mkCandles(closes []float64) []models.Candle {
	start := time.Date(2026, 2, 2, 9, 15, 0, 0, time.UTC)
	out := make([]models.Candle, len(closes))
	for i, c := range closes {
		out[i] = models.Candle{
			Timestamp: start.Add(time.Duration(i) * 5 * time.Minute),
			Open:      c,
			High:      c,
			Low:       c,
			Close:     c,
			Volume:    1000,
		}
	}
	return out
}

// series строит выровненную EMA-серию из пар (индекс начала, значения);
// всё до start — NaN.
func series(n, start int, vals ...float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	copy(out[start:], vals)
	return out
}

func TestDetectCrossoversSingleFlip(t *testing.T) {
	candles := mkCandles([]float64{1, 1, 1, 1, 1, 1})
	short := series(6, 1, 9, 8, 7, 6, 5)
	long := series(6, 2, 10, 6, 6, 6) // diff: -2, +1, 0, -1

	events := DetectCrossovers("NSE:X-EQ", candles, short, long)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Direction != models.DirectionPositive {
		t.Fatalf("first flip direction = %s, want %s", events[0].Direction, models.DirectionPositive)
	}
	if !events[0].Timestamp.Equal(candles[3].Timestamp) {
		t.Fatalf("first flip at %s, want candle 3", events[0].Timestamp)
	}
	if events[1].Direction != models.DirectionNegative {
		t.Fatalf("second flip direction = %s, want %s", events[1].Direction, models.DirectionNegative)
	}
	if !events[1].Timestamp.Equal(candles[5].Timestamp) {
		t.Fatalf("second flip at %s, want candle 5", events[1].Timestamp)
	}
}

func TestDetectCrossoversNoEventAtFirstDefinedIndex(t *testing.T) {
	// знак на первом совместно определённом индексе — базовая линия, не флип
	candles := mkCandles([]float64{1, 1, 1, 1})
	short := series(4, 0, 5, 5, 5, 5)
	long := series(4, 2, 3, 3) // diff становится известен на idx 2, сразу +

	events := DetectCrossovers("NSE:X-EQ", candles, short, long)
	if len(events) != 0 {
		t.Fatalf("got %d events, want 0", len(events))
	}
}

func TestDetectCrossoversZeroTouchIsNotAFlip(t *testing.T) {
	// касание diff == 0 между двумя плюсами: знак не менялся, событий нет
	candles := mkCandles([]float64{1, 1, 1, 1})
	short := series(4, 0, 5, 5, 4, 5)
	long := series(4, 0, 4, 5, 4, 4) // diff: +1, 0, 0, +1

	events := DetectCrossovers("NSE:X-EQ", candles, short, long)
	if len(events) != 0 {
		t.Fatalf("touch produced %d events, want 0", len(events))
	}
}

func TestDetectCrossoversZeroThenFlip(t *testing.T) {
	// плюс, касание, минус: ровно один негативный флип на первой
	// строго отрицательной точке
	candles := mkCandles([]float64{1, 1, 1, 1})
	short := series(4, 0, 5, 5, 3, 3)
	long := series(4, 0, 4, 5, 4, 4) // diff: +1, 0, -1, -1

	events := DetectCrossovers("NSE:X-EQ", candles, short, long)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Direction != models.DirectionNegative {
		t.Fatalf("direction = %s, want %s", events[0].Direction, models.DirectionNegative)
	}
	if !events[0].Timestamp.Equal(candles[2].Timestamp) {
		t.Fatalf("flip at %s, want candle 2", events[0].Timestamp)
	}
}

func TestDetectCrossoversRoundsSurfacedValues(t *testing.T) {
	candles := mkCandles([]float64{100.128, 100.128, 100.128})
	short := series(3, 0, 1.111111, 2.229, 3.005)
	long := series(3, 0, 2.0, 2.0, 2.0) // diff: -, +, + → один флип на idx 1

	events := DetectCrossovers("NSE:X-EQ", candles, short, long)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	ev := events[0]
	if ev.Close != 100.13 || ev.EMA10 != 2.23 || ev.EMA20 != 2.0 {
		t.Fatalf("rounding off: close=%v ema10=%v ema20=%v", ev.Close, ev.EMA10, ev.EMA20)
	}
}

func TestTrend(t *testing.T) {
	up := series(3, 0, 1, 2, 3)
	down := series(3, 0, 3, 2, 1)
	flat := series(3, 0, 2, 2, 2)

	if got := Trend(up, down); got != models.TrendBullish {
		t.Fatalf("bullish case: got %s", got)
	}
	if got := Trend(down, up); got != models.TrendBearish {
		t.Fatalf("bearish case: got %s", got)
	}
	if got := Trend(flat, flat); got != models.TrendNeutral {
		t.Fatalf("tie case: got %s", got)
	}
	if got := Trend(series(3, 2, 1), series(3, 3)); got != models.TrendNeutral {
		t.Fatalf("undefined long at last index: got %s", got)
	}
}
