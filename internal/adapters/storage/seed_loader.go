package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/lcalzada-xor/vulnboard/internal/adapters/feeds"
	"github.com/lcalzada-xor/vulnboard/internal/core/domain"
	"github.com/lcalzada-xor/vulnboard/internal/core/ports"
)

type seedDocument struct {
	Value []feeds.DeviceDTO `json:"value"`
}

// LoadDeviceSeed replaces the stored inventory with the devices listed in a
// JSON file shaped like the device endpoint ({"value": [...]}).
func LoadDeviceSeed(ctx context.Context, store ports.DeviceStore, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read seed file: %w", err)
	}

	var doc seedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("failed to parse seed file: %w", err)
	}

	devices := make([]domain.DeviceRecord, 0, len(doc.Value))
	for _, dto := range doc.Value {
		if dto.ID == "" || dto.CVEID == "" || dto.MachineID == "" {
			slog.Warn("Skipping incomplete device record", "id", dto.ID, "cve_id", dto.CVEID)
			continue
		}
		devices = append(devices, feeds.NormalizeDevice(dto))
	}

	if err := store.ReplaceDevices(ctx, devices); err != nil {
		return 0, fmt.Errorf("failed to store devices: %w", err)
	}
	slog.Info("Device seed loaded", "path", path, "devices", len(devices))
	return len(devices), nil
}
