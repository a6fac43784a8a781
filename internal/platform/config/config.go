// Package config reads runtime configuration from the environment with
// sensible defaults for local use.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort         = "8080"
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultIdleTimeout  = 120 * time.Second
	defaultDataDir      = "data"
	defaultCartKey      = "cart"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server ServerConfig
	Store  StoreConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// StoreConfig configures the embedded key-value store holding the cart.
type StoreConfig struct {
	// Dir is the store location on disk. Ignored when InMemory is set.
	Dir string
	// InMemory keeps the cart in process memory only; nothing survives a
	// restart.
	InMemory bool
	// CartKey is the fixed key the serialized cart lives under.
	CartKey string
}

// Load assembles configuration from the environment.
func Load() (Config, error) {
	inMemory, err := envBool("STORE_IN_MEMORY", false)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Server: ServerConfig{
			Port:         envString("PORT", defaultPort),
			ReadTimeout:  defaultReadTimeout,
			WriteTimeout: defaultWriteTimeout,
			IdleTimeout:  defaultIdleTimeout,
		},
		Store: StoreConfig{
			Dir:      envString("STORE_DIR", defaultDataDir),
			InMemory: inMemory,
			CartKey:  envString("STORE_CART_KEY", defaultCartKey),
		},
	}

	if cfg.Server.Port == "" {
		return Config{}, fmt.Errorf("config: PORT must not be empty")
	}
	return cfg, nil
}

func envString(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envBool(key string, fallback bool) (bool, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("config: %s: %w", key, err)
	}
	return parsed, nil
}
