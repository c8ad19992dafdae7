// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package commands

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/luxfi/privtx"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve eth_sendPrivateRawTransaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := privtx.NewMetrics(reg)
	if err != nil {
		return err
	}

	registry := privtx.NewRegistry(
		privtx.WithLogger(log.Named("builder")),
		privtx.WithMetrics(metrics),
		privtx.WithPooling(cfg.PoolClients),
	)
	defer registry.Close()

	svc := privtx.NewService(registry,
		privtx.WithServiceLogger(log.Named("rpc")),
		privtx.WithServiceMetrics(metrics),
		privtx.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		privtx.WithMaxRequestBytes(cfg.MaxRequestBytes),
	)

	mux := http.NewServeMux()
	if err := svc.Mount(mux); err != nil {
		return err
	}

	var healthLis net.Listener
	if cfg.HealthListen != "" {
		healthLis, err = net.Listen("tcp", cfg.HealthListen)
		if err != nil {
			return err
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return runHTTP(ctx, cfg.Listen, mux)
	})
	if cfg.MetricsListen != "" {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		g.Go(func() error {
			return runHTTP(ctx, cfg.MetricsListen, metricsMux)
		})
	}
	if healthLis != nil {
		health := privtx.NewHealth(registry)
		g.Go(func() error {
			return health.Serve(ctx, healthLis, cfg.HealthInterval)
		})
	}

	log.Info("privtxd started",
		zap.String("listen", cfg.Listen),
		zap.String("metrics", cfg.MetricsListen),
		zap.String("health", cfg.HealthListen),
		zap.Bool("poolClients", cfg.PoolClients),
	)
	return g.Wait()
}

func runHTTP(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
			return
		}
		errCh <- err
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	case err := <-errCh:
		return err
	}
}
