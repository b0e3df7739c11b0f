package models

import "time"

// Direction сигнала: пересечение EMA10 через EMA20 снизу вверх или сверху вниз.
type Direction string

const (
	DirectionPositive Direction = "POSITIVE" // EMA10 пересекла EMA20 снизу вверх
	DirectionNegative Direction = "NEGATIVE" // EMA10 пересекла EMA20 сверху вниз
)

// CrossoverEvent — факт пересечения двух EMA на конкретной свече.
// Значения Close/EMA10/EMA20 округлены до 2 знаков, сам расчёт не округляется.
type CrossoverEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Symbol    string    `json:"symbol"`
	Close     float64   `json:"close"`
	EMA10     float64   `json:"ema10"`
	EMA20     float64   `json:"ema20"`
	Direction Direction `json:"direction"`
}

// TrendState — текущее взаимное положение EMA на последней свече.
type TrendState string

const (
	TrendBullish TrendState = "BULLISH"
	TrendBearish TrendState = "BEARISH"
	TrendNeutral TrendState = "NEUTRAL"
)
