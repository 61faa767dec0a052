package config

import (
	"testing"
	"time"
)

func TestDefaultsWhenUnset(t *testing.T) {
	// t.Setenv with empty values makes sure nothing leaks in from the
	// outer environment.
	for _, name := range []string{
		"HOARD_ADDR", "HOARD_MAX_BYTES", "HOARD_MAX_VALUE_BYTES",
		"HOARD_REAP_INTERVAL", "HOARD_EVICT_INTERVAL", "HOARD_SHARDS",
	} {
		t.Setenv(name, "")
	}

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("FromEnv with empty env = %+v, want defaults %+v", cfg, Default())
	}
}

func TestOverrides(t *testing.T) {
	t.Setenv("HOARD_ADDR", "127.0.0.1:9090")
	t.Setenv("HOARD_MAX_BYTES", "1048576")
	t.Setenv("HOARD_MAX_VALUE_BYTES", "4096")
	t.Setenv("HOARD_REAP_INTERVAL", "250ms")
	t.Setenv("HOARD_EVICT_INTERVAL", "1s")
	t.Setenv("HOARD_SHARDS", "64")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	want := Config{
		Addr:          "127.0.0.1:9090",
		MaxBytes:      1 << 20,
		MaxValueBytes: 4096,
		ReapInterval:  250 * time.Millisecond,
		EvictInterval: time.Second,
		Shards:        64,
	}
	if cfg != want {
		t.Fatalf("FromEnv = %+v, want %+v", cfg, want)
	}
}

func TestMalformedValues(t *testing.T) {
	cases := map[string]string{
		"HOARD_MAX_BYTES":     "lots",
		"HOARD_REAP_INTERVAL": "sometimes",
		"HOARD_SHARDS":        "-4",
	}
	for name, val := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(name, val)
			if _, err := FromEnv(); err == nil {
				t.Fatalf("FromEnv accepted %s=%q", name, val)
			}
		})
	}
}
