// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config loads privtxd settings from YAML and the environment.
// Builder endpoints are fixed in code and are not part of the config.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	envListen         = "PRIVTX_LISTEN"
	envMetricsListen  = "PRIVTX_METRICS_LISTEN"
	envHealthListen   = "PRIVTX_HEALTH_LISTEN"
	envLogLevel       = "PRIVTX_LOG_LEVEL"
	envPoolClients    = "PRIVTX_POOL_CLIENTS"
	envRateLimitRPS   = "PRIVTX_RATE_LIMIT_RPS"
	envRateLimitBurst = "PRIVTX_RATE_LIMIT_BURST"
	envMaxRequest     = "PRIVTX_MAX_REQUEST_BYTES"
)

type Config struct {
	Listen         string        `yaml:"listen"`
	MetricsListen  string        `yaml:"metricsListen"`
	HealthListen   string        `yaml:"healthListen"`
	HealthInterval time.Duration `yaml:"healthInterval"`
	LogLevel       string        `yaml:"logLevel"`
	PoolClients    bool          `yaml:"poolClients"`
	RateLimitRPS   float64       `yaml:"rateLimitRPS"`
	RateLimitBurst int           `yaml:"rateLimitBurst"`

	// MaxRequestBytes caps inbound JSON-RPC bodies; 0 keeps the library default
	MaxRequestBytes int64 `yaml:"maxRequestBytes"`
}

func Default() Config {
	return Config{
		Listen:         "127.0.0.1:8545",
		MetricsListen:  "127.0.0.1:9090",
		HealthInterval: 30 * time.Second,
		LogLevel:       "info",
		RateLimitRPS:   30,
		RateLimitBurst: 60,

		MaxRequestBytes: 15 << 20,
	}
}

// file mirrors Config with pointers so unset keys keep their defaults
type file struct {
	Listen         *string        `yaml:"listen"`
	MetricsListen  *string        `yaml:"metricsListen"`
	HealthListen   *string        `yaml:"healthListen"`
	HealthInterval *time.Duration `yaml:"healthInterval"`
	LogLevel       *string        `yaml:"logLevel"`
	PoolClients    *bool          `yaml:"poolClients"`
	RateLimitRPS   *float64       `yaml:"rateLimitRPS"`
	RateLimitBurst *int           `yaml:"rateLimitBurst"`

	MaxRequestBytes *int64 `yaml:"maxRequestBytes"`
}

// Load returns defaults, overlaid by the YAML file at path (if non-empty)
// and then by environment variables.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		var parsed file
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		merge(&cfg, parsed)
	}
	if err := ApplyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func merge(dst *Config, src file) {
	if src.Listen != nil {
		dst.Listen = *src.Listen
	}
	if src.MetricsListen != nil {
		dst.MetricsListen = *src.MetricsListen
	}
	if src.HealthListen != nil {
		dst.HealthListen = *src.HealthListen
	}
	if src.HealthInterval != nil {
		dst.HealthInterval = *src.HealthInterval
	}
	if src.LogLevel != nil {
		dst.LogLevel = *src.LogLevel
	}
	if src.PoolClients != nil {
		dst.PoolClients = *src.PoolClients
	}
	if src.RateLimitRPS != nil {
		dst.RateLimitRPS = *src.RateLimitRPS
	}
	if src.RateLimitBurst != nil {
		dst.RateLimitBurst = *src.RateLimitBurst
	}
	if src.MaxRequestBytes != nil {
		dst.MaxRequestBytes = *src.MaxRequestBytes
	}
}

func ApplyEnvOverrides(cfg *Config) error {
	if v, ok := lookup(envListen); ok {
		cfg.Listen = v
	}
	if v, ok := lookup(envMetricsListen); ok {
		cfg.MetricsListen = v
	}
	if v, ok := lookup(envHealthListen); ok {
		cfg.HealthListen = v
	}
	if v, ok := lookup(envLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookup(envPoolClients); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envPoolClients, err)
		}
		cfg.PoolClients = b
	}
	if v, ok := lookup(envRateLimitRPS); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", envRateLimitRPS, err)
		}
		cfg.RateLimitRPS = f
	}
	if v, ok := lookup(envRateLimitBurst); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envRateLimitBurst, err)
		}
		cfg.RateLimitBurst = n
	}
	if v, ok := lookup(envMaxRequest); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", envMaxRequest, err)
		}
		cfg.MaxRequestBytes = n
	}
	return nil
}

func lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}
