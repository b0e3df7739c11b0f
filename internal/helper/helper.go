package helper

import (
	"math"
	"strings"

	"ema_scanner/internal/models"
)

// NormTF приводит пользовательский таймфрейм к брокерскому разрешению.
// Принимаем и "5m", и просто "5".
func NormTF(raw string) (models.Timeframe, bool) {
	s := strings.TrimSpace(strings.ToLower(raw))
	s = strings.TrimSuffix(s, "m")
	tf := models.Timeframe(s)
	if !tf.Valid() {
		return "", false
	}
	return tf, true
}

// Round2 округляет до 2 знаков только то, что уходит наружу.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
