package models

import "time"

// Candle — одна OHLCV свеча фиксированного таймфрейма.
// Последовательности всегда отсортированы по Timestamp по возрастанию.
type Candle struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    int64
}

// Timeframe is the broker candle resolution in minutes.
type Timeframe string

const (
	Timeframe5m  Timeframe = "5"
	Timeframe10m Timeframe = "10"
	Timeframe15m Timeframe = "15"
)

func (t Timeframe) Valid() bool {
	switch t {
	case Timeframe5m, Timeframe10m, Timeframe15m:
		return true
	}
	return false
}

// Label renders "5m" / "10m" / "15m" for display.
func (t Timeframe) Label() string { return string(t) + "m" }
