package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"ema_scanner/internal/models"
	scansvc "ema_scanner/internal/modules/scanner/service"

	"github.com/bytedance/sonic"
)

// History реализует scanner.CandleSource: trailing-окно переводим в
// epoch-диапазон, ответ брокера нормализуем в типизированные свечи.
func (c *Client) History(ctx context.Context, symbol string, tf models.Timeframe, lookback time.Duration) ([]models.Candle, error) {
	now := time.Now()

	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("resolution", string(tf))
	q.Set("date_format", "0")
	q.Set("range_from", strconv.FormatInt(now.Add(-lookback).Unix(), 10))
	q.Set("range_to", strconv.FormatInt(now.Unix(), 10))
	q.Set("cont_flag", "0")

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.dataURL+"/history?"+q.Encode(),
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader())

	resp, err := c.http.Do(req)
	if err != nil {
		// таймаут контекста всплывает сквозь url.Error, сканер его различит
		return nil, fmt.Errorf("%w: %s: %w", scansvc.ErrUpstreamFetch, symbol, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", scansvc.ErrUpstreamFetch, err)
	}
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%w: http %d: %s", scansvc.ErrUpstreamFetch, resp.StatusCode, string(body))
	}

	var payload historyResponse
	if err := sonic.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", scansvc.ErrUpstreamFetch, err)
	}
	if payload.S != "ok" {
		return nil, fmt.Errorf("%w: %s: %s", scansvc.ErrUpstreamFetch, symbol, payload.Message)
	}

	candles := make([]models.Candle, 0, len(payload.Candles))
	for i, row := range payload.Candles {
		if len(row) < 6 {
			return nil, fmt.Errorf("%w: candle row %d has %d fields", scansvc.ErrUpstreamFetch, i, len(row))
		}
		candles = append(candles, models.Candle{
			Timestamp: time.Unix(int64(row[0]), 0),
			Open:      row[1],
			High:      row[2],
			Low:       row[3],
			Close:     row[4],
			Volume:    int64(row[5]),
		})
	}
	return candles, nil
}
