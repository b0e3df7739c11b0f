package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"ema_scanner/internal/helper"
	"ema_scanner/internal/models"
	"ema_scanner/pkg/logger"

	"github.com/opentracing/opentracing-go"
)

// CandleSource — граница с адаптером источника свечей: отдаёт
// отсортированную по времени последовательность за trailing-окно
// либо типизированную ошибку фетча.
type CandleSource interface {
	History(ctx context.Context, symbol string, tf models.Timeframe, lookback time.Duration) ([]models.Candle, error)
}

type Config struct {
	Concurrency  int           // воркеров на батч-скан
	FetchTimeout time.Duration // таймаут одного фетча
	ShortPeriod  int           // default 10
	LongPeriod   int           // default 20
	Lookback     time.Duration // trailing окно, default 5 суток
}

// Scanner сам по себе синхронный и без состояния: гонять можно
// конкурентно для разных символов.
type Scanner struct {
	cfg Config
}

func NewScanner(cfg Config) *Scanner {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 30 * time.Second
	}
	if cfg.ShortPeriod <= 0 {
		cfg.ShortPeriod = 10
	}
	if cfg.LongPeriod <= 0 {
		cfg.LongPeriod = 20
	}
	if cfg.Lookback <= 0 {
		cfg.Lookback = 5 * 24 * time.Hour
	}
	return &Scanner{cfg: cfg}
}

func (s *Scanner) Defaults(symbol, display string, tf models.Timeframe) models.ScanRequest {
	return models.ScanRequest{
		Symbol:      symbol,
		DisplayName: display,
		Timeframe:   tf,
		Lookback:    s.cfg.Lookback,
		ShortPeriod: s.cfg.ShortPeriod,
		LongPeriod:  s.cfg.LongPeriod,
	}
}

func validateCandles(candles []models.Candle) error {
	if len(candles) == 0 {
		return fmt.Errorf("%w: empty candle sequence", ErrInvalidInput)
	}
	for i := 1; i < len(candles); i++ {
		if !candles[i].Timestamp.After(candles[i-1].Timestamp) {
			return fmt.Errorf("%w: timestamps not strictly ascending at index %d", ErrInvalidInput, i)
		}
	}
	return nil
}

// ScanCandles — чистая часть: свечи уже на руках, считаем серии и события.
func (s *Scanner) ScanCandles(req models.ScanRequest, candles []models.Candle) (models.SymbolScan, error) {
	if req.ShortPeriod <= 0 || req.LongPeriod <= 0 || req.ShortPeriod >= req.LongPeriod {
		return models.SymbolScan{}, fmt.Errorf("%w: periods %d/%d", ErrInvalidInput, req.ShortPeriod, req.LongPeriod)
	}
	if err := validateCandles(candles); err != nil {
		return models.SymbolScan{}, err
	}
	if len(candles) < req.LongPeriod {
		return models.SymbolScan{}, fmt.Errorf("%w: %d candles, need at least %d",
			ErrInsufficientData, len(candles), req.LongPeriod)
	}

	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}

	emaShort, err := EMA(closes, req.ShortPeriod)
	if err != nil {
		return models.SymbolScan{}, err
	}
	emaLong, err := EMA(closes, req.LongPeriod)
	if err != nil {
		return models.SymbolScan{}, err
	}

	events := DetectCrossovers(req.Symbol, candles, emaShort, emaLong)

	last := len(candles) - 1
	return models.SymbolScan{
		Symbol:      req.Symbol,
		DisplayName: req.DisplayName,
		Timeframe:   req.Timeframe.Label(),
		Price:       helper.Round2(closes[last]),
		EMA10:       helper.Round2(emaShort[last]),
		EMA20:       helper.Round2(emaLong[last]),
		Trend:       Trend(emaShort, emaLong),
		Events:      events,
	}, nil
}

// ScanSymbol фетчит свечи с таймаутом и прогоняет движок.
func (s *Scanner) ScanSymbol(ctx context.Context, src CandleSource, req models.ScanRequest) (models.SymbolScan, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "scanner.ScanSymbol")
	span.SetTag("symbol", req.Symbol)
	span.SetTag("timeframe", string(req.Timeframe))
	defer span.Finish()

	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()

	candles, err := src.History(fetchCtx, req.Symbol, req.Timeframe, req.Lookback)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %s after %s", ErrUpstreamTimeout, req.Symbol, s.cfg.FetchTimeout)
		}
		return models.SymbolScan{}, err
	}
	// для наблюдаемого флипа нужно две соседние определённые точки,
	// поэтому порог здесь на одну свечу строже движка
	if len(candles) < req.LongPeriod+1 {
		return models.SymbolScan{}, fmt.Errorf("%w: %s returned %d candles, need at least %d",
			ErrInsufficientData, req.Symbol, len(candles), req.LongPeriod+1)
	}

	return s.ScanCandles(req, candles)
}

// ScanWatchlist — фан-аут по символам с ограничением воркеров.
// Символы независимы: ошибка одного фиксируется и не трогает остальные,
// частичный результат — штатный исход.
func (s *Scanner) ScanWatchlist(
	ctx context.Context,
	src CandleSource,
	watchlistID int64,
	symbols []models.WatchlistSymbol,
	tf models.Timeframe,
) *models.WatchlistScan {
	return s.ScanWatchlistStream(ctx, src, watchlistID, symbols, tf, nil)
}

// ScanWatchlistStream — то же, но onOutcome дёргается по мере завершения
// воркеров (порядок завершения, не порядок вочлиста). Колбэк зовётся из
// одной горутины, синхронизация на стороне вызывающего не нужна.
func (s *Scanner) ScanWatchlistStream(
	ctx context.Context,
	src CandleSource,
	watchlistID int64,
	symbols []models.WatchlistSymbol,
	tf models.Timeframe,
	onOutcome func(scan models.SymbolScan, symErr *models.SymbolError),
) *models.WatchlistScan {
	span, ctx := opentracing.StartSpanFromContext(ctx, "scanner.ScanWatchlist")
	span.SetTag("watchlist_id", watchlistID)
	span.SetTag("symbols", len(symbols))
	defer span.Finish()

	out := &models.WatchlistScan{
		WatchlistID: watchlistID,
		Timeframe:   tf.Label(),
		StartedAt:   time.Now(),
	}

	type outcome struct {
		idx  int
		scan models.SymbolScan
		err  error
		sym  string
	}

	sem := make(chan struct{}, s.cfg.Concurrency)
	results := make(chan outcome, len(symbols))

	var wg sync.WaitGroup
	for i, ws := range symbols {
		wg.Add(1)
		go func(i int, ws models.WatchlistSymbol) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			req := s.Defaults(ws.Symbol, ws.Display(), tf)
			scan, err := s.ScanSymbol(ctx, src, req)
			results <- outcome{idx: i, scan: scan, err: err, sym: ws.Symbol}
		}(i, ws)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	collected := make([]outcome, 0, len(symbols))
	for r := range results {
		if onOutcome != nil {
			if r.err != nil {
				onOutcome(models.SymbolScan{}, &models.SymbolError{
					Symbol: r.sym,
					Kind:   ErrKind(r.err),
					Detail: r.err.Error(),
				})
			} else {
				onOutcome(r.scan, nil)
			}
		}
		collected = append(collected, r)
	}
	// фиксируем порядок вочлиста, а не порядок завершения воркеров
	sort.Slice(collected, func(a, b int) bool { return collected[a].idx < collected[b].idx })

	for _, r := range collected {
		if r.err != nil {
			logger.Warn("scan %s failed: %v", r.sym, r.err)
			out.Errors = append(out.Errors, models.SymbolError{
				Symbol: r.sym,
				Kind:   ErrKind(r.err),
				Detail: r.err.Error(),
			})
			continue
		}
		out.Results = append(out.Results, r.scan)
		out.Events = append(out.Events, r.scan.Events...)
	}

	// сведённый список — свежие сверху, для выдачи
	sort.SliceStable(out.Events, func(a, b int) bool {
		return out.Events[a].Timestamp.After(out.Events[b].Timestamp)
	})

	logger.Info("watchlist %d scan done: %d symbols ok, %d failed, %d crossovers",
		watchlistID, len(out.Results), len(out.Errors), len(out.Events))
	return out
}
