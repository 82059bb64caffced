package app

import (
	"context"
	"errors"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/lcalzada-xor/vulnboard/internal/adapters/cve"
	"github.com/lcalzada-xor/vulnboard/internal/adapters/storage"
	"github.com/lcalzada-xor/vulnboard/internal/config"
	"github.com/lcalzada-xor/vulnboard/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockConfig() *config.Config {
	return &config.Config{
		Addr:         "127.0.0.1:0",
		Source:       config.SourceMock,
		FetchTimeout: time.Second,
		MockScenario: "basic",
		MockSeed:     1,
		RefreshLimit: 6,
	}
}

func TestNew_MockSource(t *testing.T) {
	application, err := New(mockConfig())
	require.NoError(t, err)

	assert.NotNil(t, application.MockFeeds)
	assert.Nil(t, application.HealthServer, "gRPC is disabled when the port is 0")

	snap := application.Dashboard.Refresh(context.Background())
	assert.NoError(t, snap.Err())
	assert.NotEmpty(t, snap.Rows)
	assert.Equal(t, len(snap.Rows), application.Dashboard.Summary().TotalCVEs)
}

func TestNew_MockFeedFailureIsFailEmpty(t *testing.T) {
	application, err := New(mockConfig())
	require.NoError(t, err)

	application.MockFeeds.FailDevices(errors.New("scanner offline"))
	snap := application.Dashboard.Refresh(context.Background())

	assert.Empty(t, snap.Devices)
	assert.Empty(t, snap.Rows, "rows are driven by device records")
	assert.NotEmpty(t, snap.Vulnerabilities)
	assert.Equal(t, "Devices fetch failed: scanner offline", snap.ErrorText())
}

func TestNew_SQLiteSource(t *testing.T) {
	dir := t.TempDir()
	cfg := mockConfig()
	cfg.Source = config.SourceSQLite
	cfg.CVEDBPath = filepath.Join(dir, "cves.db")
	cfg.DeviceDBPath = filepath.Join(dir, "devices.db")

	// Seed both databases before the application opens them.
	ctx := context.Background()
	repo, err := cve.NewSQLiteRepository(cfg.CVEDBPath)
	require.NoError(t, err)
	require.NoError(t, repo.UpsertCVE(ctx, domain.VulnerabilityRecord{ID: "CVE-1", Description: "d", Severity: "HIGH", Score: 7.5}))
	require.NoError(t, repo.Close())

	store, err := storage.NewSQLiteAdapter(cfg.DeviceDBPath)
	require.NoError(t, err)
	require.NoError(t, store.ReplaceDevices(ctx, []domain.DeviceRecord{
		{ID: "d1", VulnerabilityID: "CVE-1", MachineID: "M1"},
		{ID: "d2", VulnerabilityID: "CVE-1", MachineID: "M2"},
	}))
	require.NoError(t, store.Close())

	application, err := New(cfg)
	require.NoError(t, err)
	defer application.cleanup()

	snap := application.Dashboard.Refresh(ctx)
	require.NoError(t, snap.Err())
	require.Len(t, snap.Rows, 1)
	assert.Equal(t, "HIGH", snap.Rows[0].CVESeverity)
	assert.Equal(t, []string{"M1", "M2"}, snap.Rows[0].AffectedMachines)
}

func TestRun_StopsOnCancel(t *testing.T) {
	application, err := New(mockConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- application.Run(ctx) }()

	require.Eventually(t, func() bool {
		return !application.Dashboard.Snapshot().RefreshedAt.IsZero()
	}, 2*time.Second, 10*time.Millisecond, "initial refresh should run on start")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_ReportsServerError(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer lis.Close()

	cfg := mockConfig()
	cfg.Addr = lis.Addr().String()
	application, err := New(cfg)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- application.Run(context.Background()) }()

	select {
	case err := <-done:
		assert.ErrorContains(t, err, "web server error")
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not report the bind failure")
	}
}
