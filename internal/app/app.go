package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/lcalzada-xor/vulnboard/internal/adapters/cve"
	"github.com/lcalzada-xor/vulnboard/internal/adapters/feeds"
	"github.com/lcalzada-xor/vulnboard/internal/adapters/grpchealth"
	"github.com/lcalzada-xor/vulnboard/internal/adapters/reporting"
	"github.com/lcalzada-xor/vulnboard/internal/adapters/storage"
	webserver "github.com/lcalzada-xor/vulnboard/internal/adapters/web/server"
	"github.com/lcalzada-xor/vulnboard/internal/config"
	"github.com/lcalzada-xor/vulnboard/internal/core/ports"
	"github.com/lcalzada-xor/vulnboard/internal/core/services/dashboard"
	"github.com/lcalzada-xor/vulnboard/internal/mock"
	"github.com/lcalzada-xor/vulnboard/internal/telemetry"
)

// Application holds the core components of the application.
// It acts as the Facade for the entire system, orchestrating services and infrastructure.
type Application struct {
	Config       *config.Config
	Dashboard    *dashboard.Service
	WebServer    *webserver.Server
	HealthServer *grpchealth.Server
	MockFeeds    *mock.Feeds

	devices ports.DeviceFeed
	vulns   ports.VulnerabilityFeed
	closers []io.Closer
}

// New creates a new Application instance and bootstraps its components.
func New(cfg *config.Config) (*Application, error) {
	app := &Application{
		Config: cfg,
	}

	if err := app.bootstrap(); err != nil {
		app.cleanup()
		return nil, fmt.Errorf("application bootstrap failed: %w", err)
	}

	return app, nil
}

// bootstrap orchestrates the initialization sequence.
func (app *Application) bootstrap() error {
	// 1. Foundation
	telemetry.InitMetrics()

	// 2. Feed sources
	if err := app.initFeeds(); err != nil {
		return err
	}

	// 3. Domain Services
	app.Dashboard = dashboard.NewService(app.devices, app.vulns, app.Config.FetchTimeout)

	// 4. Servers
	app.initServers()

	return nil
}

func (app *Application) initFeeds() error {
	switch app.Config.Source {
	case config.SourceSQLite:
		repo, err := cve.NewSQLiteRepository(app.Config.CVEDBPath)
		if err != nil {
			return fmt.Errorf("open CVE database: %w", err)
		}
		app.closers = append(app.closers, repo)

		store, err := storage.NewSQLiteAdapter(app.Config.DeviceDBPath)
		if err != nil {
			return fmt.Errorf("open device database: %w", err)
		}
		app.closers = append(app.closers, store)

		app.devices, app.vulns = store, repo
		slog.Info("Using SQLite feeds", "cve_db", app.Config.CVEDBPath, "device_db", app.Config.DeviceDBPath)

	case config.SourceMock:
		gen := mock.NewDataGenerator(app.Config.MockSeed)
		gen.GenerateScenario(app.Config.MockScenario)
		app.MockFeeds = mock.NewFeeds(gen)
		app.MockFeeds.Simulate = app.Config.RefreshInterval > 0

		app.devices, app.vulns = app.MockFeeds, app.MockFeeds
		slog.Info("Using mock feeds", "scenario", app.Config.MockScenario, "seed", app.Config.MockSeed)

	default:
		client := feeds.NewHTTPClient(app.Config.FetchTimeout)
		app.devices = feeds.NewDeviceClient(app.Config.DevicesURL, client)
		app.vulns = feeds.NewCVEClient(app.Config.CVEsURL, client)
		slog.Info("Using HTTP feeds", "devices_url", app.Config.DevicesURL, "cves_url", app.Config.CVEsURL)
	}
	return nil
}

func (app *Application) initServers() {
	app.WebServer = webserver.NewServer(app.Config.Addr, app.Dashboard, reporting.NewPDFExporter(), webserver.Options{
		AllowedOrigins: app.Config.AllowedOrigins,
		RefreshLimit:   app.Config.RefreshLimit,
		RefreshWindow:  time.Minute,
	})
	app.Dashboard.AddNotifier(app.WebServer.WSManager)

	if app.Config.GRPCPort > 0 {
		app.HealthServer = grpchealth.NewServer()
		app.Dashboard.AddNotifier(app.HealthServer)
	}
}

// Run starts the application components and manages their execution lifecycle.
func (app *Application) Run(ctx context.Context) error {
	slog.Info("Starting vulnboard components...")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// 1. Servers
	errChan := make(chan error, 2)

	go func() {
		if err := app.WebServer.Run(ctx); err != nil {
			errChan <- fmt.Errorf("web server error: %w", err)
		}
	}()

	if app.HealthServer != nil {
		go func() {
			if err := app.HealthServer.ListenAndServe(ctx, app.Config.GRPCPort); err != nil {
				errChan <- fmt.Errorf("grpc server error: %w", err)
			}
		}()
	}

	// 2. Refresh loop: one refresh at startup, then periodic when configured
	app.Dashboard.Start(ctx, app.Config.RefreshInterval)

	slog.Info("vulnboard ready. Press Ctrl+C to terminate.", "addr", app.Config.Addr)

	var runErr error
	select {
	case <-ctx.Done():
		slog.Info("Termination signal received")
	case runErr = <-errChan:
		cancel()
	}

	if err := app.cleanup(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

func (app *Application) cleanup() error {
	slog.Info("Cleaning up resources...")

	var firstErr error
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i].Close(); err != nil {
			slog.Error("Close failed", "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	app.closers = nil
	return firstErr
}
