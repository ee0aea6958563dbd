package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDecodeDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Decode(v)
	if err != nil {
		t.Fatalf("decode defaults failed: %v", err)
	}
	if cfg.API.Timeout() != 15*time.Second {
		t.Fatalf("default api timeout want 15s got %s", cfg.API.Timeout())
	}
	if cfg.Shop.ShippingThreshold != "300" || cfg.Shop.ShippingCost != "7" {
		t.Fatalf("unexpected shipping defaults: %+v", cfg.Shop)
	}
	if cfg.Storage.Driver != "sqlite" {
		t.Fatalf("default storage driver want sqlite got %s", cfg.Storage.Driver)
	}
	if cfg.Session.IdleTTL() != 30*time.Minute {
		t.Fatalf("default idle ttl want 30m got %s", cfg.Session.IdleTTL())
	}
}

func TestDecodeYAMLOverrides(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	raw := `
api:
  base_url: "https://api.example.com"
  timeout_seconds: 3
shop:
  shipping_threshold: "250.50"
storage:
  driver: memory
`
	if err := v.ReadConfig(strings.NewReader(raw)); err != nil {
		t.Fatalf("read yaml failed: %v", err)
	}

	cfg, err := Decode(v)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if cfg.API.BaseURL != "https://api.example.com" {
		t.Fatalf("base url override missing: %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout() != 3*time.Second {
		t.Fatalf("timeout override want 3s got %s", cfg.API.Timeout())
	}
	if cfg.Shop.ShippingThreshold != "250.50" || cfg.Shop.ShippingCost != "7" {
		t.Fatalf("unexpected shop config: %+v", cfg.Shop)
	}
	if cfg.Storage.Driver != "memory" {
		t.Fatalf("storage driver override missing: %s", cfg.Storage.Driver)
	}
}

func TestDecodeRejectsEmptyBaseURL(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("api.base_url", "  ")

	if _, err := Decode(v); err == nil {
		t.Fatalf("expected error for empty base url")
	}
}

func TestTimeoutFallbacks(t *testing.T) {
	if got := (APIConfig{}).Timeout(); got != 15*time.Second {
		t.Fatalf("api timeout fallback want 15s got %s", got)
	}
	if got := (SessionConfig{}).SweepInterval(); got != time.Minute {
		t.Fatalf("sweep interval fallback want 1m got %s", got)
	}
	if got := (CatalogConfig{CacheTTLSeconds: 10}).CacheTTL(); got != 10*time.Second {
		t.Fatalf("catalog ttl want 10s got %s", got)
	}
}
