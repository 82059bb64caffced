package ports

import (
	"context"

	"github.com/lcalzada-xor/vulnboard/internal/core/domain"
)

// InventoryService defines the dashboard operations consumed by the web
// and gRPC adapters.
type InventoryService interface {
	// Refresh re-fetches both feeds and recomputes the inventory.
	Refresh(ctx context.Context) *domain.Snapshot

	// Snapshot returns the most recent refresh result.
	Snapshot() *domain.Snapshot

	// Rows returns the current rows ordered by cfg.
	Rows(cfg domain.SortConfig) []domain.ConsolidatedRow

	// Row returns a single row by CVE identifier.
	Row(cveID string) (domain.ConsolidatedRow, bool)

	// SortConfig returns the session sort selection.
	SortConfig() domain.SortConfig

	// SelectSort applies a column selection to the session sort state.
	SelectSort(key domain.SortKey) domain.SortConfig

	// Summary returns the dashboard header figures.
	Summary() domain.Summary
}

// SnapshotNotifier is informed after every completed refresh.
type SnapshotNotifier interface {
	NotifySnapshot(ctx context.Context, snapshot *domain.Snapshot)
}
