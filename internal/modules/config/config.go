package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	tokenTelegramENV  = "TELEGRAM_TOKEN"
	databaseDSN       = "DATABASE_DSN"
	sessionSecretENV  = "SESSION_SECRET"
)

// Config ...
type Config struct {
	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`
	DB      string `yaml:"db_dsn"`
	Service struct {
		Host       string `yaml:"host"`
		PublicPort int    `yaml:"public_port"`
	} `yaml:"service"`
	Jaeger struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"jaeger"`

	// Fyers API
	Fyers struct {
		BaseURL     string `yaml:"base_url"` // https://api-t1.fyers.in/api/v3
		DataURL     string `yaml:"data_url"` // https://api-t1.fyers.in/data
		RedirectURI string `yaml:"redirect_uri"`
	} `yaml:"fyers"`

	// Дефолты сканера. Периоды — параметры вызова, тут только умолчания.
	DefaultTimeframe string `yaml:"timeframe"` // 5 | 10 | 15 (минуты)
	EMAShort         int    `yaml:"ema_short"`
	EMALong          int    `yaml:"ema_long"`
	LookbackDays     int    `yaml:"lookback_days"` // trailing календарное окно
	ScanConcurrency  int    `yaml:"scan_concurrency"`

	FetchTimeout time.Duration // SCAN_FETCH_TIMEOUT, лимит на один фетч свечей

	// Сессии дашборда
	SessionSecret string
	SessionTTL    time.Duration

	// Ежедневная зачистка брокерских токенов
	TokenWipeHour int    // локальный час, обычно 3
	TokenWipeTZ   string // IANA, обычно Asia/Kolkata
}

func NewConfig() (*Config, error) {

	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = "values_local.yaml"
	}
	file, err := os.Open("configs/" + configFileName)
	if err != nil {
		log.Fatalf("Failed to open config file: %v", err)
	}

	defer func() {
		_ = file.Close()
	}()

	decoder := yaml.NewDecoder(file)
	config := Config{
		DefaultTimeframe: getenvDefault("TIMEFRAME", "5"),
		EMAShort:         intFromEnv("EMA_SHORT", 10),
		EMALong:          intFromEnv("EMA_LONG", 20),
		LookbackDays:     intFromEnv("LOOKBACK_DAYS", 5),
		ScanConcurrency:  intFromEnv("SCAN_CONCURRENCY", 4),

		FetchTimeout: durationFromEnv("SCAN_FETCH_TIMEOUT", "30s"),

		SessionSecret: getenvDefault(sessionSecretENV, ""),
		SessionTTL:    durationFromEnv("SESSION_TTL", "12h"),

		TokenWipeHour: intFromEnv("TOKEN_WIPE_HOUR", 3),
		TokenWipeTZ:   getenvDefault("TOKEN_WIPE_TZ", "Asia/Kolkata"),
	}
	err = decoder.Decode(&config)
	if err != nil {
		log.Fatalf("Failed to decode config file: %v", err)
	}

	token := os.Getenv(tokenTelegramENV)
	if token != "" {
		config.Telegram.Token = token
	}

	dsn := os.Getenv(databaseDSN)
	if dsn != "" {
		config.DB = dsn
	}

	if config.Fyers.BaseURL == "" {
		config.Fyers.BaseURL = "https://api-t1.fyers.in/api/v3"
	}
	if config.Fyers.DataURL == "" {
		config.Fyers.DataURL = "https://api-t1.fyers.in/data"
	}

	return &config, nil
}

func getenvRequired(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("env %s is required", key))
	}
	return v
}

func intFromEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationFromEnv(key, def string) time.Duration {
	val := getenvDefault(key, def)
	d, err := time.ParseDuration(val)
	if err != nil {
		d, _ = time.ParseDuration(def)
	}
	return d
}
