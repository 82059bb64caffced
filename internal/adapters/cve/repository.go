package cve

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/lcalzada-xor/vulnboard/internal/core/domain"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteRepository implements ports.CVERepository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-based CVE repository.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	// Initialize schema
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// FetchVulnerabilities returns every stored CVE. It implements
// ports.VulnerabilityFeed so the local database can stand in for the NVD feed.
func (r *SQLiteRepository) FetchVulnerabilities(ctx context.Context) ([]domain.VulnerabilityRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT cve_id, description, severity, score
		FROM cve_records
		ORDER BY cve_id
	`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	cves := []domain.VulnerabilityRecord{}
	for rows.Next() {
		var cve domain.VulnerabilityRecord
		if err := rows.Scan(&cve.ID, &cve.Description, &cve.Severity, &cve.Score); err != nil {
			return nil, err
		}
		cves = append(cves, cve)
	}
	return cves, rows.Err()
}

// GetByID retrieves a specific CVE by its ID. Returns nil, nil when absent.
func (r *SQLiteRepository) GetByID(ctx context.Context, cveID string) (*domain.VulnerabilityRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT cve_id, description, severity, score
		FROM cve_records
		WHERE cve_id = ?
	`, cveID)

	var cve domain.VulnerabilityRecord
	err := row.Scan(&cve.ID, &cve.Description, &cve.Severity, &cve.Score)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get CVE: %w", err)
	}
	return &cve, nil
}

// UpsertCVE inserts or updates a CVE record.
func (r *SQLiteRepository) UpsertCVE(ctx context.Context, cve domain.VulnerabilityRecord) error {
	if cve.ID == "" {
		return errors.New("cve id is required")
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cve_records (cve_id, description, severity, score)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(cve_id) DO UPDATE SET
			description = excluded.description,
			severity = excluded.severity,
			score = excluded.score,
			updated_at = CURRENT_TIMESTAMP
	`, cve.ID, cve.Description, cve.Severity, cve.Score)
	return err
}

// GetLastSyncTime returns the timestamp of the last CVE database sync.
func (r *SQLiteRepository) GetLastSyncTime(ctx context.Context) (time.Time, error) {
	var lastSync string
	err := r.db.QueryRowContext(ctx, "SELECT last_sync_time FROM cve_sync_status WHERE id = 1").Scan(&lastSync)
	if err != nil {
		return time.Time{}, err
	}
	if lastSync == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, lastSync)
}

// UpdateSyncStatus updates the sync status.
func (r *SQLiteRepository) UpdateSyncStatus(ctx context.Context, lastSync time.Time, count int, errMsg string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE cve_sync_status
		SET last_sync_time = ?,
		    record_count = ?,
		    error_message = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
	`, lastSync.Format(time.RFC3339), count, errMsg)
	return err
}

// GetTotalCount returns the total number of CVE records.
func (r *SQLiteRepository) GetTotalCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cve_records").Scan(&count)
	return count, err
}

// Close closes the database connection.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
