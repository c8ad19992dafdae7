// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "privtxd.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadFileKeepsUnsetDefaults(t *testing.T) {
	path := writeConfig(t, `
listen: 0.0.0.0:8545
poolClients: true
healthInterval: 5s
rateLimitRPS: 0
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Listen != "0.0.0.0:8545" || !cfg.PoolClients || cfg.HealthInterval != 5*time.Second {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.RateLimitRPS != 0 {
		t.Errorf("rateLimitRPS = %v, want explicit 0", cfg.RateLimitRPS)
	}
	if cfg.MetricsListen != Default().MetricsListen || cfg.LogLevel != "info" || cfg.MaxRequestBytes != 15<<20 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "listen: 0.0.0.0:8545\nlogLevel: warn\n")
	t.Setenv(envListen, "127.0.0.1:9999")
	t.Setenv(envPoolClients, "true")
	t.Setenv(envRateLimitBurst, "5")
	t.Setenv(envMaxRequest, "1048576")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Listen != "127.0.0.1:9999" || !cfg.PoolClients || cfg.RateLimitBurst != 5 {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.MaxRequestBytes != 1<<20 {
		t.Errorf("maxRequestBytes = %d, want 1048576", cfg.MaxRequestBytes)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("logLevel = %q, want warn", cfg.LogLevel)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file accepted")
	}
	if _, err := Load(writeConfig(t, "listen: [unterminated")); err == nil {
		t.Error("invalid yaml accepted")
	}

	t.Setenv(envPoolClients, "sometimes")
	if _, err := Load(""); err == nil {
		t.Error("invalid bool accepted")
	}
}
