package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lcalzada-xor/vulnboard/internal/adapters/cve"
	"github.com/lcalzada-xor/vulnboard/internal/config"
)

func main() {
	seedFiles := flag.String("seed-file", "./configs/cve_seed.json", "Path(s) to CVE seed JSON files (comma separated)")
	dbPath := flag.String("db-path", config.DefaultCVEDBPath(), "Path to CVE database")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))
	slog.Info("CVE seed loader", "seed_files", *seedFiles, "db", *dbPath)

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		slog.Error("Failed to create data directory", "error", err)
		os.Exit(1)
	}

	repo, err := cve.NewSQLiteRepository(*dbPath)
	if err != nil {
		slog.Error("Failed to create repository", "error", err)
		os.Exit(1)
	}
	defer repo.Close()

	ctx := context.Background()
	if previous, err := repo.GetLastSyncTime(ctx); err == nil && !previous.IsZero() {
		slog.Info("Previous CVE sync", "at", previous.Format(time.RFC3339))
	}
	loader := cve.NewSeedLoader(repo)

	paths := strings.Split(*seedFiles, ",")
	loaded := loader.LoadFromMultipleFiles(ctx, paths)

	errMsg := ""
	if loaded == 0 {
		errMsg = "no CVEs loaded"
	}
	if err := repo.UpdateSyncStatus(ctx, time.Now(), loaded, errMsg); err != nil {
		slog.Warn("Failed to update sync status", "error", err)
	}

	count, _ := repo.GetTotalCount(ctx)
	stats := loader.Stats()
	slog.Info("CVE database updated", "loaded", loaded, "total", count,
		"added", stats.Added, "updated", stats.Updated, "unchanged", stats.Unchanged, "failed", stats.Failed)
	if loaded == 0 {
		repo.Close()
		os.Exit(1)
	}
}
