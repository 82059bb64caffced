package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/lcalzada-xor/vulnboard/internal/adapters/reporting"
	"github.com/lcalzada-xor/vulnboard/internal/adapters/web"
	"github.com/lcalzada-xor/vulnboard/internal/adapters/web/handlers"
	"github.com/lcalzada-xor/vulnboard/internal/adapters/web/middleware"
	"github.com/lcalzada-xor/vulnboard/internal/core/ports"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Options tunes the HTTP surface.
type Options struct {
	// AllowedOrigins lists the websocket Origin values accepted besides same-origin.
	AllowedOrigins []string
	// RefreshLimit caps refresh requests per client per RefreshWindow.
	RefreshLimit  int
	RefreshWindow time.Duration
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		RefreshLimit:  6,
		RefreshWindow: time.Minute,
	}
}

// Server handles HTTP and WebSocket connections.
type Server struct {
	Addr      string
	Service   ports.InventoryService
	WSManager *web.WSManager

	InventoryHandler *handlers.InventoryHandler
	ExportHandler    *handlers.ExportHandler
	DashboardHandler *handlers.DashboardHandler
	RiskHandler      *handlers.RiskHandler

	refreshLimiter *middleware.RateLimiter
	srv            *http.Server
}

// NewServer creates a new web server.
func NewServer(addr string, service ports.InventoryService, pdfExporter *reporting.PDFExporter, opts Options) *Server {
	if opts.RefreshLimit <= 0 {
		opts.RefreshLimit = DefaultOptions().RefreshLimit
	}
	if opts.RefreshWindow <= 0 {
		opts.RefreshWindow = DefaultOptions().RefreshWindow
	}

	return &Server{
		Addr:             addr,
		Service:          service,
		WSManager:        web.NewWSManager(service, opts.AllowedOrigins),
		InventoryHandler: handlers.NewInventoryHandler(service),
		ExportHandler:    handlers.NewExportHandler(service, pdfExporter),
		DashboardHandler: handlers.NewDashboardHandler(service),
		RiskHandler:      handlers.NewRiskHandler(service),
		refreshLimiter:   middleware.NewRateLimiter(opts.RefreshLimit, opts.RefreshWindow),
	}
}

// Handler returns the instrumented root handler.
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(SetupRoutes(s), "vulnboard-server")
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	defer s.refreshLimiter.Close()

	s.srv = &http.Server{
		Addr:              s.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		slog.Info("Web server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Web server shutdown error", "error", err)
		}
	}()

	slog.Info("Web server listening", "addr", s.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
