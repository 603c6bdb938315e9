package config

import (
	"testing"
	"time"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.Cache.ProductTTL != 15*time.Minute {
		t.Fatalf("expected product TTL 15m, got %s", cfg.Cache.ProductTTL)
	}
	if len(cfg.RabbitMQ.ExchangeConfigs) != 1 || cfg.RabbitMQ.ExchangeConfigs[0].Name != "exchange.product" {
		t.Fatalf("unexpected exchanges %+v", cfg.RabbitMQ.ExchangeConfigs)
	}
	if cfg.Outbox.Interval != 500*time.Millisecond {
		t.Fatalf("expected outbox interval 500ms, got %s", cfg.Outbox.Interval)
	}
}

func TestNewConfig_Overrides(t *testing.T) {
	t.Setenv("MONGO_DATABASE", "catalog_test")
	t.Setenv("CACHE_TTL", "2m")
	t.Setenv("RATE_LIMIT_REQUESTS", "5")
	t.Setenv("IS_PRODUCTION", "1")

	cfg := NewConfig()

	if cfg.Mongo.Database != "catalog_test" {
		t.Fatalf("expected database catalog_test, got %q", cfg.Mongo.Database)
	}
	if cfg.Cache.ProductTTL != 2*time.Minute {
		t.Fatalf("expected product TTL 2m, got %s", cfg.Cache.ProductTTL)
	}
	if cfg.RateLimit.Limit != 5 {
		t.Fatalf("expected rate limit 5, got %d", cfg.RateLimit.Limit)
	}
	if !cfg.Logger.IsProduction {
		t.Fatal("expected production mode")
	}
}

func TestEnvHelpers_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("X_INT", "ten")
	t.Setenv("X_BOOL", "maybe")
	t.Setenv("X_DURATION", "-1s")

	if got := getIntEnv("X_INT", 7); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
	if got := getBoolEnv("X_BOOL", true); !got {
		t.Fatal("expected fallback true")
	}
	if got := getDurationEnv("X_DURATION", time.Second); got != time.Second {
		t.Fatalf("expected 1s, got %s", got)
	}
}
