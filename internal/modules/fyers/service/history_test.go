package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ema_scanner/internal/models"
	scansvc "ema_scanner/internal/modules/scanner/service"
)

func testClient(url string) *Client {
	return &Client{
		http:        &http.Client{Timeout: 5 * time.Second},
		baseURL:     url,
		dataURL:     url,
		appID:       "APP-100",
		accessToken: "token-123",
	}
}

func TestHistoryDecodesCandles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "APP-100:token-123" {
			t.Errorf("auth header = %q", got)
		}
		if got := r.URL.Query().Get("symbol"); got != "NSE:SBIN-EQ" {
			t.Errorf("symbol = %q", got)
		}
		if got := r.URL.Query().Get("resolution"); got != "5" {
			t.Errorf("resolution = %q", got)
		}
		w.Write([]byte(`{"s":"ok","candles":[
			[1756700100,100.5,101,100,100.75,12000],
			[1756700400,100.75,102,100.5,101.5,8000]
		]}`))
	}))
	defer srv.Close()

	candles, err := testClient(srv.URL).History(
		context.Background(), "NSE:SBIN-EQ", models.Timeframe5m, 5*24*time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candles) != 2 {
		t.Fatalf("got %d candles, want 2", len(candles))
	}
	first := candles[0]
	if !first.Timestamp.Equal(time.Unix(1756700100, 0)) {
		t.Fatalf("timestamp = %s", first.Timestamp)
	}
	if first.Open != 100.5 || first.High != 101 || first.Low != 100 || first.Close != 100.75 {
		t.Fatalf("ohlc = %v/%v/%v/%v", first.Open, first.High, first.Low, first.Close)
	}
	if first.Volume != 12000 {
		t.Fatalf("volume = %d", first.Volume)
	}
}

func TestHistoryBrokerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"s":"error","message":"invalid symbol"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).History(context.Background(), "NSE:BOGUS", models.Timeframe5m, time.Hour)
	if !errors.Is(err, scansvc.ErrUpstreamFetch) {
		t.Fatalf("want ErrUpstreamFetch, got %v", err)
	}
}

func TestHistoryHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).History(context.Background(), "NSE:SBIN-EQ", models.Timeframe5m, time.Hour)
	if !errors.Is(err, scansvc.ErrUpstreamFetch) {
		t.Fatalf("want ErrUpstreamFetch, got %v", err)
	}
}

func TestHistoryMalformedRow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"s":"ok","candles":[[1756700100,100.5]]}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).History(context.Background(), "NSE:SBIN-EQ", models.Timeframe5m, time.Hour)
	if !errors.Is(err, scansvc.ErrUpstreamFetch) {
		t.Fatalf("want ErrUpstreamFetch, got %v", err)
	}
}
