package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("STORE_DIR", "")
	t.Setenv("STORE_IN_MEMORY", "")
	t.Setenv("STORE_CART_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("unexpected port %q", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Fatalf("unexpected read timeout %v", cfg.Server.ReadTimeout)
	}
	if cfg.Store.Dir != "data" {
		t.Fatalf("unexpected store dir %q", cfg.Store.Dir)
	}
	if cfg.Store.InMemory {
		t.Fatalf("expected durable store by default")
	}
	if cfg.Store.CartKey != "cart" {
		t.Fatalf("unexpected cart key %q", cfg.Store.CartKey)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DIR", "/var/lib/storefront")
	t.Setenv("STORE_IN_MEMORY", "true")
	t.Setenv("STORE_CART_KEY", "cart-v2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Fatalf("unexpected port %q", cfg.Server.Port)
	}
	if cfg.Store.Dir != "/var/lib/storefront" {
		t.Fatalf("unexpected store dir %q", cfg.Store.Dir)
	}
	if !cfg.Store.InMemory {
		t.Fatalf("expected in-memory store")
	}
	if cfg.Store.CartKey != "cart-v2" {
		t.Fatalf("unexpected cart key %q", cfg.Store.CartKey)
	}
}

func TestLoadRejectsBadBool(t *testing.T) {
	t.Setenv("STORE_IN_MEMORY", "maybe")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unparseable boolean")
	}
}
