// Package grpchealth exposes feed availability over the standard gRPC
// health checking protocol.
package grpchealth

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"github.com/lcalzada-xor/vulnboard/internal/core/domain"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Service names reported by the health server, one per feed.
const (
	DevicesService = "vulnboard.devices"
	CVEsService    = "vulnboard.cves"
)

var feedServices = map[string]string{
	domain.FeedDevices: DevicesService,
	domain.FeedCVEs:    CVEsService,
}

// Server serves grpc.health.v1.Health. Feed services report NOT_SERVING
// when the feed failed in the latest refresh, and UNKNOWN before the
// first refresh completes. The overall service ("") is SERVING while the
// process is up.
type Server struct {
	grpc   *grpc.Server
	health *health.Server
}

// NewServer creates a health server with every feed in UNKNOWN state.
func NewServer() *Server {
	s := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)

	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	for _, name := range feedServices {
		hs.SetServingStatus(name, healthpb.HealthCheckResponse_UNKNOWN)
	}

	return &Server{grpc: s, health: hs}
}

// NotifySnapshot updates each feed service from the refresh outcome.
func (s *Server) NotifySnapshot(_ context.Context, snapshot *domain.Snapshot) {
	for feed, name := range feedServices {
		status := healthpb.HealthCheckResponse_SERVING
		if snapshot.FeedFailed(feed) {
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
		s.health.SetServingStatus(name, status)
	}
}

// GRPC returns the underlying server, e.g. to register more services.
func (s *Server) GRPC() *grpc.Server {
	return s.grpc
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	go func() {
		<-ctx.Done()
		s.health.Shutdown()
		s.grpc.GracefulStop()
	}()

	slog.Info("gRPC health server listening", "addr", lis.Addr().String())
	if err := s.grpc.Serve(lis); err != nil && err != grpc.ErrServerStopped {
		return fmt.Errorf("grpc serve: %w", err)
	}
	return nil
}

// ListenAndServe listens on the TCP port and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("grpc listen on port %d: %w", port, err)
	}
	return s.Serve(ctx, lis)
}
