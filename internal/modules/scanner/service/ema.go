package service

import (
	"fmt"
	"math"
)

// EMA считает экспоненциальную скользящую по ценам закрытия.
// Выравнивание 1:1 со входом: индексы < period-1 не определены (NaN),
// на индексе period-1 сидит SMA-затравка из первых period значений,
// дальше рекурсия ema[i] = close[i]*k + ema[i-1]*(1-k), k = 2/(period+1).
// Промежуточные значения не округляются.
func EMA(closes []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: period %d", ErrInvalidInput, period)
	}
	if len(closes) == 0 {
		return nil, fmt.Errorf("%w: empty close series", ErrInvalidInput)
	}
	if len(closes) < period {
		return nil, fmt.Errorf("%w: %d closes for EMA%d", ErrInsufficientData, len(closes), period)
	}

	out := make([]float64, len(closes))
	for i := 0; i < period-1; i++ {
		out[i] = math.NaN()
	}

	var sum float64
	for i := 0; i < period; i++ {
		sum += closes[i]
	}
	out[period-1] = sum / float64(period)

	k := 2.0 / (float64(period) + 1)
	for i := period; i < len(closes); i++ {
		out[i] = closes[i]*k + out[i-1]*(1-k)
	}
	return out, nil
}

// Defined — определено ли значение серии в точке i.
func Defined(series []float64, i int) bool {
	return i >= 0 && i < len(series) && !math.IsNaN(series[i])
}
