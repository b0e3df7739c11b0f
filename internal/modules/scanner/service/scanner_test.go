package service

import (
	"context"
	"errors"
	"math"
	"os"
	"reflect"
	"testing"
	"time"

	"ema_scanner/internal/models"
	"ema_scanner/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func scanReq(short, long int) models.ScanRequest {
	return models.ScanRequest{
		Symbol:      "NSE:SBIN-EQ",
		DisplayName: "SBIN",
		Timeframe:   models.Timeframe5m,
		Lookback:    5 * 24 * time.Hour,
		ShortPeriod: short,
		LongPeriod:  long,
	}
}

func TestScanCandlesConstantPriceNoCrossover(t *testing.T) {
	// периоды 3/7: k = 1/2 и 1/4, на константе арифметика точная
	closes := make([]float64, 12)
	for i := range closes {
		closes[i] = 256
	}
	s := NewScanner(Config{})

	scan, err := s.ScanCandles(scanReq(3, 7), mkCandles(closes))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scan.Events) != 0 {
		t.Fatalf("константа дала %d событий", len(scan.Events))
	}
	if scan.Trend != models.TrendNeutral {
		t.Fatalf("trend = %s, want %s", scan.Trend, models.TrendNeutral)
	}
	if scan.Price != 256 || scan.EMA10 != 256 || scan.EMA20 != 256 {
		t.Fatalf("values drifted: price=%v ema=%v/%v", scan.Price, scan.EMA10, scan.EMA20)
	}
}

func TestScanCandlesSinglePositiveFlip(t *testing.T) {
	// периоды 2/3, скачок вверх после просадки: ровно один позитивный флип.
	// Руками: ema2 = [_,10,10,4,2,1.33,13.78,...], ema3 = [_,_,10,5.5,3.25,2.125,11.0625,...]
	// diff уходит в минус на idx 3 и возвращается в плюс на idx 6.
	closes := []float64{10, 10, 10, 1, 1, 1, 20, 20, 20}
	s := NewScanner(Config{})

	scan, err := s.ScanCandles(scanReq(2, 3), mkCandles(closes))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scan.Events) != 1 {
		t.Fatalf("got %d events, want 1", len(scan.Events))
	}
	ev := scan.Events[0]
	if ev.Direction != models.DirectionPositive {
		t.Fatalf("direction = %s, want %s", ev.Direction, models.DirectionPositive)
	}
	wantTS := time.Date(2026, 2, 2, 9, 15, 0, 0, time.UTC).Add(6 * 5 * time.Minute)
	if !ev.Timestamp.Equal(wantTS) {
		t.Fatalf("flip at %s, want %s", ev.Timestamp, wantTS)
	}
	if ev.Close != 20 || ev.EMA10 != 13.78 || ev.EMA20 != 11.06 {
		t.Fatalf("event values: close=%v ema=%v/%v", ev.Close, ev.EMA10, ev.EMA20)
	}
	if scan.Trend != models.TrendBullish {
		t.Fatalf("trend = %s, want %s", scan.Trend, models.TrendBullish)
	}
}

func TestScanCandlesSingleNegativeFlip(t *testing.T) {
	// зеркало позитивного кейса: рост, потом обвал
	closes := []float64{10, 10, 10, 19, 19, 19, 1, 1, 1}
	s := NewScanner(Config{})

	scan, err := s.ScanCandles(scanReq(2, 3), mkCandles(closes))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scan.Events) != 1 {
		t.Fatalf("got %d events, want 1", len(scan.Events))
	}
	if scan.Events[0].Direction != models.DirectionNegative {
		t.Fatalf("direction = %s, want %s", scan.Events[0].Direction, models.DirectionNegative)
	}
	wantTS := time.Date(2026, 2, 2, 9, 15, 0, 0, time.UTC).Add(6 * 5 * time.Minute)
	if !scan.Events[0].Timestamp.Equal(wantTS) {
		t.Fatalf("flip at %s, want %s", scan.Events[0].Timestamp, wantTS)
	}
	if scan.Trend != models.TrendBearish {
		t.Fatalf("trend = %s, want %s", scan.Trend, models.TrendBearish)
	}
}

func TestScanCandlesIdempotent(t *testing.T) {
	closes := []float64{10, 10, 10, 1, 1, 1, 20, 20, 20}
	s := NewScanner(Config{})
	req := scanReq(2, 3)
	candles := mkCandles(closes)

	first, err := s.ScanCandles(req, candles)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := s.ScanCandles(req, candles)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("runs differ:\n%+v\n%+v", first, second)
	}
}

func TestScanCandlesInsufficientBoundary(t *testing.T) {
	s := NewScanner(Config{})

	mk := func(n int) []models.Candle {
		closes := make([]float64, n)
		for i := range closes {
			closes[i] = 100 + float64(i)
		}
		return mkCandles(closes)
	}

	// 19 свечей на период 20 — отказ
	if _, err := s.ScanCandles(scanReq(10, 20), mk(19)); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("19 candles: want ErrInsufficientData, got %v", err)
	}

	// ровно 20: EMA20 определена только в последней точке, событий ноль
	scan, err := s.ScanCandles(scanReq(10, 20), mk(20))
	if err != nil {
		t.Fatalf("20 candles: %v", err)
	}
	if len(scan.Events) != 0 {
		t.Fatalf("20 candles gave %d events", len(scan.Events))
	}
	if math.IsNaN(scan.EMA20) {
		t.Fatalf("EMA20 must be defined at last index")
	}
}

func TestScanCandlesInvalidInput(t *testing.T) {
	s := NewScanner(Config{})

	if _, err := s.ScanCandles(scanReq(20, 10), mkCandles([]float64{1, 2, 3})); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("short >= long: want ErrInvalidInput, got %v", err)
	}
	if _, err := s.ScanCandles(scanReq(10, 20), nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("no candles: want ErrInvalidInput, got %v", err)
	}

	candles := mkCandles([]float64{1, 2, 3, 4})
	candles[2].Timestamp = candles[1].Timestamp // нарушаем строгое возрастание
	if _, err := s.ScanCandles(scanReq(1, 2), candles); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unsorted candles: want ErrInvalidInput, got %v", err)
	}
}

// fakeSource отдаёт заготовленные свечи; для символов из slow
// висит до отмены контекста.
type fakeSource struct {
	data map[string][]models.Candle
	slow map[string]bool
}

func (f *fakeSource) History(ctx context.Context, symbol string, _ models.Timeframe, _ time.Duration) ([]models.Candle, error) {
	if f.slow[symbol] {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	candles, ok := f.data[symbol]
	if !ok {
		return nil, errors.New("unknown symbol")
	}
	return candles, nil
}

func TestScanWatchlistPartialFailure(t *testing.T) {
	// периоды движка дефолтные 10/20, свечей нужно минимум 21
	long := make([]float64, 30)
	for i := range long {
		long[i] = 100
	}

	src := &fakeSource{
		data: map[string][]models.Candle{
			"NSE:SBIN-EQ": mkCandles(long),
			"NSE:TCS-EQ":  mkCandles(long),
		},
		slow: map[string]bool{"NSE:HDFC-EQ": true},
	}

	s := NewScanner(Config{Concurrency: 2, FetchTimeout: 50 * time.Millisecond})
	symbols := []models.WatchlistSymbol{
		{Symbol: "NSE:SBIN-EQ"},
		{Symbol: "NSE:HDFC-EQ"},
		{Symbol: "NSE:TCS-EQ"},
	}

	out := s.ScanWatchlist(context.Background(), src, 7, symbols, models.Timeframe5m)
	if out.WatchlistID != 7 {
		t.Fatalf("watchlist id = %d", out.WatchlistID)
	}
	if len(out.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(out.Results))
	}
	// порядок вочлиста, не порядок завершения воркеров
	if out.Results[0].Symbol != "NSE:SBIN-EQ" || out.Results[1].Symbol != "NSE:TCS-EQ" {
		t.Fatalf("wrong order: %s, %s", out.Results[0].Symbol, out.Results[1].Symbol)
	}
	if len(out.Errors) != 1 {
		t.Fatalf("got %d errors, want 1", len(out.Errors))
	}
	if out.Errors[0].Symbol != "NSE:HDFC-EQ" || out.Errors[0].Kind != "UPSTREAM_TIMEOUT" {
		t.Fatalf("error = %+v", out.Errors[0])
	}
}

func TestScanWatchlistStreamDeliversEveryOutcome(t *testing.T) {
	long := make([]float64, 30)
	for i := range long {
		long[i] = 100
	}
	src := &fakeSource{
		data: map[string][]models.Candle{"NSE:SBIN-EQ": mkCandles(long)},
		slow: map[string]bool{"NSE:HDFC-EQ": true},
	}

	s := NewScanner(Config{Concurrency: 2, FetchTimeout: 50 * time.Millisecond})
	symbols := []models.WatchlistSymbol{
		{Symbol: "NSE:SBIN-EQ"},
		{Symbol: "NSE:HDFC-EQ"},
	}

	var oks, fails int
	out := s.ScanWatchlistStream(context.Background(), src, 1, symbols, models.Timeframe5m,
		func(scan models.SymbolScan, symErr *models.SymbolError) {
			if symErr != nil {
				fails++
				return
			}
			oks++
		})
	if oks != 1 || fails != 1 {
		t.Fatalf("callback saw %d ok / %d failed, want 1/1", oks, fails)
	}
	if len(out.Results) != 1 || len(out.Errors) != 1 {
		t.Fatalf("summary: %d results, %d errors", len(out.Results), len(out.Errors))
	}
}

func TestErrKind(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{ErrInsufficientData, "INSUFFICIENT_DATA"},
		{ErrInvalidInput, "INVALID_INPUT"},
		{ErrUpstreamTimeout, "UPSTREAM_TIMEOUT"},
		{ErrUpstreamFetch, "UPSTREAM_FETCH_ERROR"},
		{errors.New("что-то левое"), "UNKNOWN"},
	}
	for _, c := range cases {
		if got := ErrKind(c.err); got != c.want {
			t.Fatalf("ErrKind(%v) = %s, want %s", c.err, got, c.want)
		}
	}
}
