package domain

import (
	"errors"
	"fmt"
	"time"
)

// Feed names used in error messages, metrics labels and health checks.
const (
	FeedDevices = "devices"
	FeedCVEs    = "cves"
)

// FeedError records the failure of a single feed during a refresh.
type FeedError struct {
	Feed string
	Err  error
}

func (e *FeedError) Error() string {
	switch e.Feed {
	case FeedDevices:
		return fmt.Sprintf("Devices fetch failed: %v", e.Err)
	case FeedCVEs:
		return fmt.Sprintf("CVEs fetch failed: %v", e.Err)
	default:
		return fmt.Sprintf("%s fetch failed: %v", e.Feed, e.Err)
	}
}

func (e *FeedError) Unwrap() error { return e.Err }

// Snapshot is the immutable result of one refresh cycle. Collections are
// replaced wholesale on every refresh and never mutated afterwards.
type Snapshot struct {
	RefreshID       string                `json:"refreshId"`
	Devices         []DeviceRecord        `json:"-"`
	Vulnerabilities []VulnerabilityRecord `json:"-"`
	Rows            []ConsolidatedRow     `json:"-"`
	Errors          []*FeedError          `json:"-"`
	RefreshedAt     time.Time             `json:"refreshedAt"`
}

// FeedFailed reports whether the named feed failed in this snapshot.
func (s *Snapshot) FeedFailed(feed string) bool {
	for _, e := range s.Errors {
		if e.Feed == feed {
			return true
		}
	}
	return false
}

// Summary holds the dashboard header figures.
type Summary struct {
	TotalCVEs      int       `json:"totalCves"`
	DevicesScanned int       `json:"devicesScanned"` // unique machines in scope
	Entries        int       `json:"entries"`        // consolidated rows listed in the table
	Loading        bool      `json:"loading"`
	Error          string    `json:"error,omitempty"`
	RefreshedAt    time.Time `json:"refreshedAt"`
}

// Summary derives the header figures from the snapshot. Loading is live
// service state and is left false.
func (s *Snapshot) Summary() Summary {
	return Summary{
		TotalCVEs:      len(s.Rows),
		DevicesScanned: UniqueMachines(s.Devices),
		Entries:        len(s.Rows),
		Error:          s.ErrorText(),
		RefreshedAt:    s.RefreshedAt,
	}
}

// ErrorText joins the feed failures into the newline separated message
// surfaced to operators. Empty when every feed succeeded.
func (s *Snapshot) ErrorText() string {
	var out string
	for i, e := range s.Errors {
		if i > 0 {
			out += "\n"
		}
		out += e.Error()
	}
	return out
}

// Err aggregates the feed failures into a single error, or nil.
func (s *Snapshot) Err() error {
	errs := make([]error, 0, len(s.Errors))
	for _, e := range s.Errors {
		errs = append(errs, e)
	}
	return errors.Join(errs...)
}
