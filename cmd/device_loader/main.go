package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lcalzada-xor/vulnboard/internal/adapters/storage"
	"github.com/lcalzada-xor/vulnboard/internal/config"
)

func main() {
	seedFile := flag.String("seed-file", "./configs/device_seed.json", "Path to device seed JSON file")
	dbPath := flag.String("db-path", config.DefaultDeviceDBPath(), "Path to device database")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))
	slog.Info("Device seed loader", "seed_file", *seedFile, "db", *dbPath)

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		slog.Error("Failed to create data directory", "error", err)
		os.Exit(1)
	}

	store, err := storage.NewSQLiteAdapter(*dbPath)
	if err != nil {
		slog.Error("Failed to open device store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()
	n, err := storage.LoadDeviceSeed(ctx, store, *seedFile)
	if err != nil {
		slog.Error("Failed to load seed data", "error", err)
		store.Close()
		os.Exit(1)
	}

	count, _ := store.Count(ctx)
	slog.Info("Device database replaced", "loaded", n, "total", count)
}
