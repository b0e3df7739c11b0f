package service

import (
	"math"

	"ema_scanner/internal/helper"
	"ema_scanner/internal/models"
)

// DetectCrossovers проходит по двум выровненным EMA-сериям и снимает все
// смены знака разности ema10-ema20, начиная с первого совместно
// определённого индекса.
//
// Политика нулей: отслеживаем знак последней НЕнулевой разности (lastSign).
// Точка с diff == 0 сама по себе не событие и lastSign не обновляет — касание
// считается "остались на прежней стороне", пока не появится строгий знак.
// Наивное сравнение соседних пар на таких сериях даёт двойные события.
//
// Вход обязан быть отсортирован по времени по возрастанию; выход в том же
// порядке. Функция чистая.
func DetectCrossovers(symbol string, candles []models.Candle, emaShort, emaLong []float64) []models.CrossoverEvent {
	var events []models.CrossoverEvent

	lastSign := 0 // 0 — ещё не видели ненулевой разности
	for i := range candles {
		if !Defined(emaShort, i) || !Defined(emaLong, i) {
			continue
		}
		diff := emaShort[i] - emaLong[i]
		if diff == 0 {
			continue
		}
		sign := 1
		if math.Signbit(diff) {
			sign = -1
		}
		if lastSign != 0 && sign != lastSign {
			dir := models.DirectionPositive
			if sign < 0 {
				dir = models.DirectionNegative
			}
			events = append(events, models.CrossoverEvent{
				Timestamp: candles[i].Timestamp,
				Symbol:    symbol,
				Close:     helper.Round2(candles[i].Close),
				EMA10:     helper.Round2(emaShort[i]),
				EMA20:     helper.Round2(emaLong[i]),
				Direction: dir,
			})
		}
		lastSign = sign
	}
	return events
}

// Trend — текущее положение коротких/длинных EMA на последней свече.
func Trend(emaShort, emaLong []float64) models.TrendState {
	i := len(emaShort) - 1
	if i < 0 || !Defined(emaShort, i) || !Defined(emaLong, i) {
		return models.TrendNeutral
	}
	switch {
	case emaShort[i] > emaLong[i]:
		return models.TrendBullish
	case emaShort[i] < emaLong[i]:
		return models.TrendBearish
	default:
		return models.TrendNeutral
	}
}
