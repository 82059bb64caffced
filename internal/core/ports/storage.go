package ports

import (
	"context"

	"github.com/lcalzada-xor/vulnboard/internal/core/domain"
)

// DeviceFeed yields the full, normalized device exposure collection.
type DeviceFeed interface {
	FetchDevices(ctx context.Context) ([]domain.DeviceRecord, error)
}

// DeviceStore is a local device inventory that can also act as a DeviceFeed.
type DeviceStore interface {
	DeviceFeed

	// ReplaceDevices swaps the stored inventory for devices, keeping their order.
	ReplaceDevices(ctx context.Context, devices []domain.DeviceRecord) error

	// Count returns the number of stored device records.
	Count(ctx context.Context) (int64, error)

	// Close closes the storage connection.
	Close() error
}
