// Package config reads hoardd process configuration from the environment.
// Every knob has a default; an unset variable never fails, a malformed one
// does.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is the full hoardd runtime configuration.
type Config struct {
	Addr          string        // HOARD_ADDR
	MaxBytes      int64         // HOARD_MAX_BYTES
	MaxValueBytes int           // HOARD_MAX_VALUE_BYTES
	ReapInterval  time.Duration // HOARD_REAP_INTERVAL
	EvictInterval time.Duration // HOARD_EVICT_INTERVAL
	Shards        int           // HOARD_SHARDS
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:          ":8080",
		MaxBytes:      256 << 20,
		MaxValueBytes: 1 << 20,
		ReapInterval:  5 * time.Second,
		EvictInterval: 2 * time.Second,
		Shards:        16,
	}
}

// FromEnv returns Default overlaid with any HOARD_* variables that are set.
func FromEnv() (Config, error) {
	cfg := Default()

	if v := os.Getenv("HOARD_ADDR"); v != "" {
		cfg.Addr = v
	}

	var err error
	if cfg.MaxBytes, err = int64Env("HOARD_MAX_BYTES", cfg.MaxBytes); err != nil {
		return Config{}, err
	}
	if cfg.MaxValueBytes, err = intEnv("HOARD_MAX_VALUE_BYTES", cfg.MaxValueBytes); err != nil {
		return Config{}, err
	}
	if cfg.ReapInterval, err = durationEnv("HOARD_REAP_INTERVAL", cfg.ReapInterval); err != nil {
		return Config{}, err
	}
	if cfg.EvictInterval, err = durationEnv("HOARD_EVICT_INTERVAL", cfg.EvictInterval); err != nil {
		return Config{}, err
	}
	if cfg.Shards, err = intEnv("HOARD_SHARDS", cfg.Shards); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func int64Env(name string, def int64) (int64, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("config: %s=%q is not a non-negative integer", name, v)
	}
	return n, nil
}

func intEnv(name string, def int) (int, error) {
	n, err := int64Env(name, int64(def))
	return int(n), err
}

// durationEnv accepts Go duration strings ("5s", "250ms").
func durationEnv(name string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("config: %s=%q is not a non-negative duration", name, v)
	}
	return d, nil
}
