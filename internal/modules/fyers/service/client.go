package service

import (
	"net/http"
	"time"

	"ema_scanner/internal/modules/config"
)

// Factory строит per-user клиентов: app_id и access_token у каждого
// пользователя свои, HTTP-клиент общий.
type Factory struct {
	cfg  *config.Config
	http *http.Client
}

func NewFactory(cfg *config.Config) *Factory {
	return &Factory{
		cfg:  cfg,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

func (f *Factory) Client(appID, accessToken string) *Client {
	return &Client{
		http:        f.http,
		baseURL:     f.cfg.Fyers.BaseURL,
		dataURL:     f.cfg.Fyers.DataURL,
		appID:       appID,
		accessToken: accessToken,
	}
}

// Client — адаптер брокерского API Fyers. Единственный контракт со
// сканером: History отдаёт time-ascending свечи либо типизированную ошибку.
type Client struct {
	http        *http.Client
	baseURL     string
	dataURL     string
	appID       string
	accessToken string
}

func (c *Client) authHeader() string {
	return c.appID + ":" + c.accessToken
}
