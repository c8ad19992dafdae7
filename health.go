// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package privtx

import (
	"context"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthService is the gRPC health service name reported by the daemon.
const HealthService = "privtx.PrivateTransaction"

// Health reports over gRPC whether any builder can currently be constructed.
type Health struct {
	registry *Registry
	server   *health.Server
}

func NewHealth(registry *Registry) *Health {
	h := &Health{
		registry: registry,
		server:   health.NewServer(),
	}
	h.Check()
	return h
}

// Check re-evaluates the registry and updates the reported status.
func (h *Health) Check() healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	for _, kind := range Kinds() {
		b, err := h.registry.Build(kind)
		if err != nil {
			continue
		}
		h.registry.Release([]*Builder{b})
		status = healthpb.HealthCheckResponse_SERVING
		break
	}
	h.server.SetServingStatus("", status)
	h.server.SetServingStatus(HealthService, status)
	return status
}

// Serve runs a gRPC server exposing the health service on lis until ctx is
// done. Status is refreshed every interval.
func (h *Health) Serve(ctx context.Context, lis net.Listener, interval time.Duration) error {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, h.server)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(lis) }()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			h.server.Shutdown()
			srv.GracefulStop()
			return nil
		case err := <-errCh:
			return err
		case <-ticker.C:
			h.Check()
		}
	}
}
