package ports

import (
	"context"
	"time"

	"github.com/lcalzada-xor/vulnboard/internal/core/domain"
)

// VulnerabilityFeed yields the full, normalized vulnerability collection.
type VulnerabilityFeed interface {
	FetchVulnerabilities(ctx context.Context) ([]domain.VulnerabilityRecord, error)
}

// CVERepository defines the interface for local CVE database operations.
type CVERepository interface {
	VulnerabilityFeed

	// Get specific CVE by ID
	GetByID(ctx context.Context, cveID string) (*domain.VulnerabilityRecord, error)

	// Sync operations
	UpsertCVE(ctx context.Context, cve domain.VulnerabilityRecord) error
	GetLastSyncTime(ctx context.Context) (time.Time, error)
	UpdateSyncStatus(ctx context.Context, lastSync time.Time, count int, errMsg string) error

	// Utility
	GetTotalCount(ctx context.Context) (int, error)
	Close() error
}
