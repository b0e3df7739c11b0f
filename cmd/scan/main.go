package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"ema_scanner/internal/helper"
	"ema_scanner/internal/models"
	"ema_scanner/internal/modules/config"
	fyerssvc "ema_scanner/internal/modules/fyers/service"
	scansvc "ema_scanner/internal/modules/scanner/service"
	"ema_scanner/pkg/logger"
)

// Разовый скан из терминала: символы аргументами, ключи из .scan.yaml.
//
//	scan NSE:SBIN-EQ NSE:TCS-EQ

func loadConfig() (*config.Config, error) {
	viper.SetConfigName(".scan")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")
	viper.SetEnvPrefix("SCAN")
	viper.AutomaticEnv()

	viper.SetDefault("timeframe", "5")
	viper.SetDefault("ema_short", 10)
	viper.SetDefault("ema_long", 20)
	viper.SetDefault("lookback_days", 5)
	viper.SetDefault("fyers.base_url", "https://api-t1.fyers.in/api/v3")
	viper.SetDefault("fyers.data_url", "https://api-t1.fyers.in/data")

	if err := viper.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "read .scan.yaml")
	}

	cfg := &config.Config{
		DefaultTimeframe: viper.GetString("timeframe"),
		EMAShort:         viper.GetInt("ema_short"),
		EMALong:          viper.GetInt("ema_long"),
		LookbackDays:     viper.GetInt("lookback_days"),
	}
	cfg.Fyers.BaseURL = viper.GetString("fyers.base_url")
	cfg.Fyers.DataURL = viper.GetString("fyers.data_url")
	return cfg, nil
}

func run() error {
	if len(os.Args) < 2 {
		return errors.New("usage: scan SYMBOL [SYMBOL...]")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	appID := viper.GetString("fyers.app_id")
	token := viper.GetString("fyers.access_token")
	if appID == "" || token == "" {
		return errors.New("fyers.app_id and fyers.access_token are required")
	}

	tf, ok := helper.NormTF(cfg.DefaultTimeframe)
	if !ok {
		return errors.Errorf("invalid timeframe %q", cfg.DefaultTimeframe)
	}

	src := fyerssvc.NewFactory(cfg).Client(appID, token)
	sc := scansvc.NewScanner(scansvc.Config{
		ShortPeriod: cfg.EMAShort,
		LongPeriod:  cfg.EMALong,
		Lookback:    time.Duration(cfg.LookbackDays) * 24 * time.Hour,
	})

	symbols := make([]models.WatchlistSymbol, 0, len(os.Args)-1)
	for _, s := range os.Args[1:] {
		symbols = append(symbols, models.WatchlistSymbol{Symbol: s})
	}

	scan := sc.ScanWatchlist(context.Background(), src, 0, symbols, tf)

	for _, r := range scan.Results {
		fmt.Printf("%-20s %s close=%.2f ema10=%.2f ema20=%.2f trend=%s crossovers=%d\n",
			r.Symbol, r.Timeframe, r.Price, r.EMA10, r.EMA20, r.Trend, len(r.Events))
		for _, e := range r.Events {
			fmt.Printf("    %s  %s  close=%.2f ema10=%.2f ema20=%.2f\n",
				e.Timestamp.Format(time.DateTime), e.Direction, e.Close, e.EMA10, e.EMA20)
		}
	}
	for _, e := range scan.Errors {
		fmt.Printf("%-20s FAILED [%s] %s\n", e.Symbol, e.Kind, e.Detail)
	}
	return nil
}

func main() {
	if err := logger.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
