package helper

import (
	"testing"

	"ema_scanner/internal/models"
)

func TestNormTF(t *testing.T) {
	cases := []struct {
		in   string
		want models.Timeframe
		ok   bool
	}{
		{"5", models.Timeframe5m, true},
		{"5m", models.Timeframe5m, true},
		{" 15M ", models.Timeframe15m, true},
		{"10", models.Timeframe10m, true},
		{"1", "", false},
		{"", "", false},
		{"5h", "", false},
	}
	for _, c := range cases {
		got, ok := NormTF(c.in)
		if got != c.want || ok != c.ok {
			t.Fatalf("NormTF(%q) = %q, %v; want %q, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestRound2(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{100.128, 100.13},
		{100.124, 100.12},
		{-2.678, -2.68},
		{2.0, 2.0},
	}
	for _, c := range cases {
		if got := Round2(c.in); got != c.want {
			t.Fatalf("Round2(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
