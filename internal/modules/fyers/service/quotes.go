package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/bytedance/sonic"
)

const maxQuoteSymbols = 50

// Quote — текущая котировка для дашборда.
type Quote struct {
	Symbol        string  `json:"symbol"`
	LastPrice     float64 `json:"last_price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Volume        int64   `json:"volume"`
}

// Quotes берёт котировки пачкой; брокер принимает максимум 50 символов,
// лишнее молча отрезаем как и оригинал.
func (c *Client) Quotes(ctx context.Context, symbols []string) ([]Quote, error) {
	if len(symbols) == 0 {
		return nil, nil
	}
	if len(symbols) > maxQuoteSymbols {
		symbols = symbols[:maxQuoteSymbols]
	}

	q := url.Values{}
	q.Set("symbols", strings.Join(symbols, ","))

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.dataURL+"/quotes?"+q.Encode(),
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var payload quotesResponse
	if err := sonic.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if payload.S != "ok" {
		return nil, fmt.Errorf("fyers quotes error: %s", payload.Message)
	}

	out := make([]Quote, 0, len(payload.D))
	for _, d := range payload.D {
		out = append(out, Quote{
			Symbol:        d.N,
			LastPrice:     d.V.LP,
			Change:        d.V.Ch,
			ChangePercent: d.V.Chp,
			Volume:        d.V.Volume,
		})
	}
	return out, nil
}
