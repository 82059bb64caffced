package cve

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lcalzada-xor/vulnboard/internal/adapters/feeds"
	"github.com/lcalzada-xor/vulnboard/internal/core/domain"
	"github.com/lcalzada-xor/vulnboard/internal/core/ports"
)

// SeedLoader loads NVD 2.0 JSON documents ({"vulnerabilities": [...]}) into
// the CVE database.
type SeedLoader struct {
	repo  ports.CVERepository
	now   func() time.Time
	stats SeedStats
}

// SeedStats counts record outcomes across every file this loader processed.
type SeedStats struct {
	Added     int
	Updated   int
	Unchanged int
	Failed    int
}

// NewSeedLoader creates a new seed loader.
func NewSeedLoader(repo ports.CVERepository) *SeedLoader {
	return &SeedLoader{repo: repo, now: time.Now}
}

type seedDocument struct {
	Vulnerabilities []feeds.CVEEntryDTO `json:"vulnerabilities"`
}

// LoadFromFile loads CVE records from a JSON file and returns how many were
// stored.
func (s *SeedLoader) LoadFromFile(ctx context.Context, path string) (int, error) {
	slog.Info("Loading CVE seed", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read seed file: %w", err)
	}

	var doc seedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("failed to parse seed file: %w", err)
	}

	loaded, failed := 0, 0
	for _, entry := range doc.Vulnerabilities {
		rec := feeds.NormalizeCVE(entry)
		if err := s.store(ctx, rec); err != nil {
			slog.Warn("Failed to load CVE", "cve_id", rec.ID, "error", err)
			failed++
			s.stats.Failed++
			continue
		}
		loaded++
	}

	slog.Info("CVE seed loaded", "path", path, "loaded", loaded, "failed", failed)

	errMsg := ""
	if failed > 0 {
		errMsg = fmt.Sprintf("%d records failed to load", failed)
	}
	if err := s.repo.UpdateSyncStatus(ctx, s.now(), loaded, errMsg); err != nil {
		return loaded, fmt.Errorf("failed to update sync status: %w", err)
	}

	return loaded, nil
}

// store upserts rec unless the database already holds an identical record,
// which keeps updated_at meaningful across repeated loads.
func (s *SeedLoader) store(ctx context.Context, rec domain.VulnerabilityRecord) error {
	existing, err := s.repo.GetByID(ctx, rec.ID)
	if err != nil {
		return err
	}
	if existing != nil && *existing == rec {
		s.stats.Unchanged++
		return nil
	}
	if err := s.repo.UpsertCVE(ctx, rec); err != nil {
		return err
	}
	if existing == nil {
		s.stats.Added++
	} else {
		s.stats.Updated++
	}
	return nil
}

// Stats returns the outcome counts so far.
func (s *SeedLoader) Stats() SeedStats {
	return s.stats
}

// LoadFromMultipleFiles loads CVEs from multiple JSON files, skipping the
// ones that fail.
func (s *SeedLoader) LoadFromMultipleFiles(ctx context.Context, paths []string) int {
	total := 0
	files := 0

	for _, path := range paths {
		n, err := s.LoadFromFile(ctx, path)
		if err != nil {
			slog.Warn("Failed to load seed file", "path", path, "error", err)
			continue
		}
		total += n
		files++
	}

	slog.Info("CVE seed files processed", "loaded_files", files, "total_files", len(paths), "records", total)
	return total
}
