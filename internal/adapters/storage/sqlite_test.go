package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/lcalzada-xor/vulnboard/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T) *SQLiteAdapter {
	t.Helper()
	store, err := NewSQLiteAdapter(filepath.Join(t.TempDir(), "devices.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteAdapter_ReplaceAndFetch(t *testing.T) {
	store := newTestAdapter(t)
	ctx := context.Background()

	devices := []domain.DeviceRecord{
		{ID: "z-last-id", VulnerabilityID: "CVE-1", MachineID: "M2", Severity: "High"},
		{ID: "a-first-id", VulnerabilityID: "CVE-1", MachineID: "M1", FixingKBID: "KB1",
			Product: domain.Product{Name: "openssl", Vendor: "openssl", Version: "1.1.1"}},
	}
	require.NoError(t, store.ReplaceDevices(ctx, devices))

	got, err := store.FetchDevices(ctx)
	require.NoError(t, err)
	assert.Equal(t, devices, got, "feed order must be preserved")

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestSQLiteAdapter_KeepsRecordsSharingAnID(t *testing.T) {
	store := newTestAdapter(t)
	ctx := context.Background()

	devices := []domain.DeviceRecord{
		{ID: "dup", VulnerabilityID: "CVE-1", MachineID: "M1"},
		{ID: "dup", VulnerabilityID: "CVE-1", MachineID: "M2"},
		{ID: "other", VulnerabilityID: "CVE-2", MachineID: "M1"},
	}
	require.NoError(t, store.ReplaceDevices(ctx, devices))

	got, err := store.FetchDevices(ctx)
	require.NoError(t, err)
	assert.Equal(t, devices, got)
}

func TestSQLiteAdapter_ReplaceDropsPreviousInventory(t *testing.T) {
	store := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, store.ReplaceDevices(ctx, []domain.DeviceRecord{
		{ID: "d1", VulnerabilityID: "CVE-1", MachineID: "M1"},
		{ID: "d2", VulnerabilityID: "CVE-2", MachineID: "M2"},
	}))
	require.NoError(t, store.ReplaceDevices(ctx, []domain.DeviceRecord{
		{ID: "d3", VulnerabilityID: "CVE-3", MachineID: "M3"},
	}))

	got, err := store.FetchDevices(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "d3", got[0].ID)

	require.NoError(t, store.ReplaceDevices(ctx, nil))
	got, err = store.FetchDevices(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadDeviceSeed(t *testing.T) {
	store := newTestAdapter(t)
	seed := filepath.Join(t.TempDir(), "devices.json")
	require.NoError(t, os.WriteFile(seed, []byte(`{"value":[
		{"id":"d1","cveId":"CVE-1","machineId":"M1","fixingKbId":null,"productName":"nginx","productVendor":"f5","productVersion":"1.18","severity":"Medium"},
		{"id":"d2","cveId":"","machineId":"M2"},
		{"id":"d3","cveId":"CVE-2","machineId":"M1","fixingKbId":"KB9","productName":"nginx","productVendor":"f5","productVersion":"1.18","severity":"Low"}
	]}`), 0o644))

	n, err := LoadDeviceSeed(context.Background(), store, seed)

	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := store.FetchDevices(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "d1", got[0].ID)
	assert.Equal(t, "KB9", got[1].FixingKBID)
}

func TestLoadDeviceSeed_InvalidFile(t *testing.T) {
	store := newTestAdapter(t)

	_, err := LoadDeviceSeed(context.Background(), store, filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
