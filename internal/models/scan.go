package models

import "time"

// ScanRequest — что сканируем: символ, таймфрейм, глубина окна.
// Периоды EMA приходят параметрами, не константами движка.
type ScanRequest struct {
	Symbol      string
	DisplayName string
	Timeframe   Timeframe
	Lookback    time.Duration // trailing calendar window, e.g. 5 days
	ShortPeriod int           // default 10
	LongPeriod  int           // default 20
}

// SymbolScan — результат по одному символу.
type SymbolScan struct {
	Symbol      string           `json:"symbol"`
	DisplayName string           `json:"display_name"`
	Timeframe   string           `json:"timeframe"`
	Price       float64          `json:"current_price"`
	EMA10       float64          `json:"current_ema10"`
	EMA20       float64          `json:"current_ema20"`
	Trend       TrendState       `json:"current_signal"`
	Events      []CrossoverEvent `json:"crossovers"`
}

// SymbolError — зафиксированная ошибка по одному символу.
// Ошибка одного символа никогда не валит скан остальных.
type SymbolError struct {
	Symbol string `json:"symbol"`
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

// WatchlistScan — итог батч-скана вочлиста: независимые результаты и ошибки.
type WatchlistScan struct {
	WatchlistID int64            `json:"watchlist_id"`
	Timeframe   string           `json:"timeframe"`
	StartedAt   time.Time        `json:"started_at"`
	Results     []SymbolScan     `json:"results"`
	Errors      []SymbolError    `json:"errors"`
	Events      []CrossoverEvent `json:"all_crossovers"` // flattened, newest first
}

// Positive подсчитывает бычьи события в сведённом списке.
func (w *WatchlistScan) Positive() int {
	n := 0
	for _, e := range w.Events {
		if e.Direction == DirectionPositive {
			n++
		}
	}
	return n
}

func (w *WatchlistScan) Negative() int {
	n := 0
	for _, e := range w.Events {
		if e.Direction == DirectionNegative {
			n++
		}
	}
	return n
}
