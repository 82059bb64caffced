package mock

import (
	"context"
	"sync"
	"time"

	"github.com/lcalzada-xor/vulnboard/internal/core/domain"
)

// Feeds serves a DataGenerator as both the device and the CVE feed.
// Failures and latency can be injected per feed.
type Feeds struct {
	Generator *DataGenerator
	// Simulate advances the generator before every device fetch.
	Simulate bool

	mu        sync.Mutex
	latency   time.Duration
	deviceErr error
	cveErr    error
}

// NewFeeds wraps gen in feed adapters
func NewFeeds(gen *DataGenerator) *Feeds {
	return &Feeds{Generator: gen}
}

// SetLatency delays every fetch by d, or until the context is done.
func (f *Feeds) SetLatency(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.latency = d
}

// FailDevices makes device fetches return err; nil restores them.
func (f *Feeds) FailDevices(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deviceErr = err
}

// FailCVEs makes CVE fetches return err; nil restores them.
func (f *Feeds) FailCVEs(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cveErr = err
}

// FetchDevices implements ports.DeviceFeed
func (f *Feeds) FetchDevices(ctx context.Context) ([]domain.DeviceRecord, error) {
	f.mu.Lock()
	latency, err := f.latency, f.deviceErr
	f.mu.Unlock()

	if err := wait(ctx, latency); err != nil {
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	if f.Simulate {
		f.Generator.SimulateActivity()
	}
	return f.Generator.Devices(), nil
}

// FetchVulnerabilities implements ports.VulnerabilityFeed
func (f *Feeds) FetchVulnerabilities(ctx context.Context) ([]domain.VulnerabilityRecord, error) {
	f.mu.Lock()
	latency, err := f.latency, f.cveErr
	f.mu.Unlock()

	if err := wait(ctx, latency); err != nil {
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	return f.Generator.Vulnerabilities(), nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
