package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/cache"
	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/catalog"
	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/currency"
	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/discount"
	h "github.com/developer-25/Mini-E-commerce-Cart-System/internal/http"
	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/service"
	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/shell"
	"github.com/developer-25/Mini-E-commerce-Cart-System/pkg/config"
	"github.com/developer-25/Mini-E-commerce-Cart-System/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	converter, err := newConverter(cfg.CurrencyRates)
	if err != nil {
		log.Fatal("invalid currency rates", zap.Error(err))
	}

	products := catalog.Default()
	engine := discount.NewEngine()
	checkoutService := service.NewCheckoutService(engine, converter, log)

	switch cfg.Mode {
	case config.ModeHTTP:
		receiptCache, closeCache := newReceiptCache(cfg, log)
		defer closeCache()

		handler := h.NewHandler(h.Dependencies{
			Catalog:    products,
			Promotions: engine,
			Currencies: converter,
			Checkout:   checkoutService,
			Receipts:   service.NewReceiptService(receiptCache, log),
		}, log)
		serve(cfg, h.NewRouter(handler, cfg.RequestTimeout, log), log)
	default:
		sh := shell.New(os.Stdin, os.Stdout, products, engine, converter, checkoutService, log)
		if err := sh.Run(); err != nil {
			log.Fatal("shell stopped", zap.Error(err))
		}
	}
}

func newConverter(rates string) (*currency.Converter, error) {
	if rates == "" {
		return currency.Default(), nil
	}
	parsed, err := currency.ParseRates(rates)
	if err != nil {
		return nil, err
	}
	return currency.New(parsed)
}

func newReceiptCache(cfg *config.Config, log *zap.Logger) (cache.ReceiptCache, func()) {
	if cfg.RedisAddr == "" {
		log.Info("REDIS_ADDR not set, keeping receipts in memory")
		mem := cache.NewMemoryCache(cfg.ReceiptTTL)
		return mem, func() { _ = mem.Close() }
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("failed to connect to redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}
	log.Info("connected to redis", zap.String("addr", cfg.RedisAddr))

	return cache.NewRedisCache(client, cfg.ReceiptTTL, log), func() { _ = client.Close() }
}

func serve(cfg *config.Config, handler http.Handler, log *zap.Logger) {
	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("pricing API starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
		return
	}
	log.Info("server stopped")
}
