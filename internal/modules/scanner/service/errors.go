package service

import "errors"

// Типизированные исходы движка. Все ошибки локальны для символа и
// матчатся через errors.Is; батч-скан они не прерывают.
var (
	// ErrInsufficientData — свечей меньше, чем нужно для длинной EMA,
	// либо меньше двух совместно определённых точек.
	ErrInsufficientData = errors.New("insufficient candle data")

	// ErrInvalidInput — пустая последовательность, неположительный период,
	// неотсортированные или дублирующиеся таймстемпы.
	ErrInvalidInput = errors.New("invalid scan input")

	// ErrUpstreamFetch — источник свечей ответил ошибкой.
	ErrUpstreamFetch = errors.New("upstream candle fetch failed")

	// ErrUpstreamTimeout — источник свечей не ответил вовремя.
	ErrUpstreamTimeout = errors.New("upstream candle fetch timed out")
)

// ErrKind — строковый код для отчёта по символу и для хранения.
func ErrKind(err error) string {
	switch {
	case errors.Is(err, ErrInsufficientData):
		return "INSUFFICIENT_DATA"
	case errors.Is(err, ErrInvalidInput):
		return "INVALID_INPUT"
	case errors.Is(err, ErrUpstreamTimeout):
		return "UPSTREAM_TIMEOUT"
	case errors.Is(err, ErrUpstreamFetch):
		return "UPSTREAM_FETCH_ERROR"
	default:
		return "UNKNOWN"
	}
}
