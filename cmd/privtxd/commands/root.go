// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package commands implements the privtxd command line.
package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/luxfi/privtx/internal/config"
)

var (
	configPath string
	cfg        config.Config
	log        *zap.Logger

	listen          string
	metricsListen   string
	healthListen    string
	logLevel        string
	poolClients     bool
	rateLimitRPS    float64
	rateLimitBurst  int
	maxRequestBytes int64
)

func Execute() error {
	root := &cobra.Command{
		Use:          "privtxd",
		Short:        "Private transaction relay to block builders",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			applyFlags(cmd.Flags(), &loaded)
			cfg = loaded

			log, err = newLogger(cfg.LogLevel)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if log != nil {
				_ = log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "path to a YAML config file")
	pf.StringVar(&listen, "listen", "", "JSON-RPC listen address")
	pf.StringVar(&metricsListen, "metrics-listen", "", "prometheus listen address (empty disables)")
	pf.StringVar(&healthListen, "health-listen", "", "gRPC health listen address (empty disables)")
	pf.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	pf.BoolVar(&poolClients, "pool-clients", false, "reuse builder clients across requests")
	pf.Float64Var(&rateLimitRPS, "rate-limit-rps", 0, "requests per second per client IP (0 disables)")
	pf.IntVar(&rateLimitBurst, "rate-limit-burst", 0, "rate limiter burst per client IP")
	pf.Int64Var(&maxRequestBytes, "max-request-bytes", 0, "inbound JSON-RPC body cap in bytes")

	serve := serveCmd()
	root.AddCommand(serve, endpointsCmd())
	root.RunE = serve.RunE
	return root.Execute()
}

// applyFlags overlays flags the user set on top of file and env config.
func applyFlags(flags *pflag.FlagSet, c *config.Config) {
	if flags.Changed("listen") {
		c.Listen = listen
	}
	if flags.Changed("metrics-listen") {
		c.MetricsListen = metricsListen
	}
	if flags.Changed("health-listen") {
		c.HealthListen = healthListen
	}
	if flags.Changed("log-level") {
		c.LogLevel = logLevel
	}
	if flags.Changed("pool-clients") {
		c.PoolClients = poolClients
	}
	if flags.Changed("rate-limit-rps") {
		c.RateLimitRPS = rateLimitRPS
	}
	if flags.Changed("rate-limit-burst") {
		c.RateLimitBurst = rateLimitBurst
	}
	if flags.Changed("max-request-bytes") {
		c.MaxRequestBytes = maxRequestBytes
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}
