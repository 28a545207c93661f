package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ModeShell = "shell"
	ModeHTTP  = "http"
)

type Config struct {
	AppEnv   string
	LogLevel string
	Mode     string

	HTTPPort        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	// empty RedisAddr keeps receipts in memory
	RedisAddr     string
	RedisPassword string
	ReceiptTTL    time.Duration

	// CurrencyRates overrides the built-in table, e.g. "EUR=0.85,GBP=0.75"
	CurrencyRates string
}

// Load reads .env when present, then the process environment
func Load() (*Config, error) {
	// a missing .env file is fine, the environment is used as is
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		Mode:          strings.ToLower(getEnv("APP_MODE", ModeShell)),
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		CurrencyRates: getEnv("CURRENCY_RATES", ""),
	}

	var err error
	if cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.ReceiptTTL, err = getDuration("RECEIPT_TTL", 15*time.Minute); err != nil {
		return nil, err
	}

	if cfg.Mode != ModeShell && cfg.Mode != ModeHTTP {
		return nil, fmt.Errorf("APP_MODE must be %q or %q, got %q", ModeShell, ModeHTTP, cfg.Mode)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}
