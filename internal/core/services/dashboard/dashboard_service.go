package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/lcalzada-xor/vulnboard/internal/core/domain"
	"github.com/lcalzada-xor/vulnboard/internal/core/ports"
	"github.com/lcalzada-xor/vulnboard/internal/core/services/inventory"
	"github.com/lcalzada-xor/vulnboard/internal/telemetry"
)

var tracer = telemetry.Tracer("dashboard")

// Service orchestrates the two feeds and owns the current inventory
// snapshot plus the session sort selection.
type Service struct {
	devices      ports.DeviceFeed
	vulns        ports.VulnerabilityFeed
	selection    *inventory.SortSelection
	fetchTimeout time.Duration

	mu        sync.RWMutex
	snapshot  *domain.Snapshot
	inflight  int
	notifiers []ports.SnapshotNotifier
}

// NewService creates a dashboard service with an empty snapshot.
// fetchTimeout bounds each feed fetch; zero disables the bound.
func NewService(devices ports.DeviceFeed, vulns ports.VulnerabilityFeed, fetchTimeout time.Duration) *Service {
	return &Service{
		devices:      devices,
		vulns:        vulns,
		selection:    inventory.NewSortSelection(),
		fetchTimeout: fetchTimeout,
		snapshot:     emptySnapshot(),
	}
}

func emptySnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Devices:         []domain.DeviceRecord{},
		Vulnerabilities: []domain.VulnerabilityRecord{},
		Rows:            []domain.ConsolidatedRow{},
	}
}

// AddNotifier registers a component told about each new snapshot.
func (s *Service) AddNotifier(n ports.SnapshotNotifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifiers = append(s.notifiers, n)
}

// Refresh fetches both feeds concurrently and waits for both to settle.
// A failing feed does not cancel the other; its collection is reset to
// empty and the failure is recorded on the snapshot. The new snapshot
// replaces the previous one in a single swap.
//
// Overlapping refreshes are not sequenced: whichever finishes last wins.
func (s *Service) Refresh(ctx context.Context) *domain.Snapshot {
	start := time.Now()
	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()

	ctx, span := tracer.Start(ctx, "Refresh")
	defer span.End()

	var (
		devices   []domain.DeviceRecord
		vulns     []domain.VulnerabilityRecord
		deviceErr error
		vulnErr   error
	)

	// Both goroutines always return nil so neither aborts the other.
	var g errgroup.Group
	g.Go(func() error {
		devices, deviceErr = s.fetchDevices(ctx)
		return nil
	})
	g.Go(func() error {
		vulns, vulnErr = s.fetchVulnerabilities(ctx)
		return nil
	})
	_ = g.Wait()

	snap := &domain.Snapshot{
		RefreshID:       uuid.NewString(),
		Devices:         devices,
		Vulnerabilities: vulns,
		RefreshedAt:     time.Now(),
	}
	// TODO: fail-empty drops the last good collection on a transient error;
	// revisit whether operators should keep seeing the previous data.
	if deviceErr != nil {
		snap.Devices = []domain.DeviceRecord{}
		snap.Errors = append(snap.Errors, &domain.FeedError{Feed: domain.FeedDevices, Err: deviceErr})
	}
	if vulnErr != nil {
		snap.Vulnerabilities = []domain.VulnerabilityRecord{}
		snap.Errors = append(snap.Errors, &domain.FeedError{Feed: domain.FeedCVEs, Err: vulnErr})
	}
	if snap.Devices == nil {
		snap.Devices = []domain.DeviceRecord{}
	}
	if snap.Vulnerabilities == nil {
		snap.Vulnerabilities = []domain.VulnerabilityRecord{}
	}
	snap.Rows = inventory.Consolidate(snap.Devices, snap.Vulnerabilities)

	s.mu.Lock()
	s.snapshot = snap
	s.inflight--
	notifiers := s.notifiers
	s.mu.Unlock()

	telemetry.RefreshDuration.Observe(time.Since(start).Seconds())
	telemetry.InventoryRows.Set(float64(len(snap.Rows)))

	span.SetAttributes(
		attribute.String("refresh.id", snap.RefreshID),
		attribute.Int("inventory.rows", len(snap.Rows)),
	)
	if err := snap.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "feed failure")
		slog.Warn("Inventory refresh degraded", "refresh_id", snap.RefreshID, "error", err)
	} else {
		slog.Info("Inventory refreshed", "refresh_id", snap.RefreshID,
			"devices", len(snap.Devices), "cves", len(snap.Vulnerabilities), "rows", len(snap.Rows))
	}

	for _, n := range notifiers {
		n.NotifySnapshot(ctx, snap)
	}
	return snap
}

func (s *Service) fetchDevices(ctx context.Context) ([]domain.DeviceRecord, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	devices, err := s.devices.FetchDevices(ctx)
	recordFetch(domain.FeedDevices, len(devices), err)
	return devices, err
}

func (s *Service) fetchVulnerabilities(ctx context.Context) ([]domain.VulnerabilityRecord, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	vulns, err := s.vulns.FetchVulnerabilities(ctx)
	recordFetch(domain.FeedCVEs, len(vulns), err)
	return vulns, err
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.fetchTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.fetchTimeout)
}

func recordFetch(feed string, n int, err error) {
	if err != nil {
		telemetry.FeedFetches.WithLabelValues(feed, "error").Inc()
		telemetry.FeedRecords.WithLabelValues(feed).Set(0)
		return
	}
	telemetry.FeedFetches.WithLabelValues(feed, "success").Inc()
	telemetry.FeedRecords.WithLabelValues(feed).Set(float64(n))
}

// Start performs an initial refresh and then refreshes every interval
// until ctx is cancelled. A non-positive interval only runs the initial
// refresh.
func (s *Service) Start(ctx context.Context, interval time.Duration) {
	go func() {
		s.Refresh(ctx)
		if interval <= 0 {
			return
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Refresh(ctx)
			}
		}
	}()
}

// Snapshot returns the most recent refresh result.
func (s *Service) Snapshot() *domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Loading reports whether a refresh is in progress.
func (s *Service) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inflight > 0
}

// Rows returns the current rows ordered by cfg.
func (s *Service) Rows(cfg domain.SortConfig) []domain.ConsolidatedRow {
	return inventory.SortRows(s.Snapshot().Rows, cfg)
}

// Row looks up a single row by CVE identifier.
func (s *Service) Row(cveID string) (domain.ConsolidatedRow, bool) {
	for _, r := range s.Snapshot().Rows {
		if r.CVEID == cveID {
			return r, true
		}
	}
	return domain.ConsolidatedRow{}, false
}

// SortConfig returns the session sort selection.
func (s *Service) SortConfig() domain.SortConfig {
	return s.selection.Current()
}

// SelectSort applies a column selection to the session sort state.
func (s *Service) SelectSort(key domain.SortKey) domain.SortConfig {
	telemetry.SortSelections.WithLabelValues(string(key)).Inc()
	return s.selection.Select(key)
}

// Summary returns the dashboard header figures.
func (s *Service) Summary() domain.Summary {
	summary := s.Snapshot().Summary()
	summary.Loading = s.Loading()
	return summary
}
