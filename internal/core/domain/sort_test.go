package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityRank(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"Critical", 4},
		{"  HIGH ", 3},
		{"medium", 2},
		{"Low", 1},
		{"Unknown", 0},
		{"", 0},
		{"severe", 0},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, SeverityRank(tt.label))
		})
	}
}

func TestParseSortKey(t *testing.T) {
	k, ok := ParseSortKey(" Severity ")
	assert.True(t, ok)
	assert.Equal(t, SortBySeverity, k)

	_, ok = ParseSortKey("vendor")
	assert.False(t, ok)
}

func TestParseSortDirection(t *testing.T) {
	d, ok := ParseSortDirection("ASC")
	assert.True(t, ok)
	assert.Equal(t, SortAsc, d)
	assert.Equal(t, SortDesc, d.Opposite())

	_, ok = ParseSortDirection("up")
	assert.False(t, ok)
}

func TestDefaultSortConfig(t *testing.T) {
	assert.Equal(t, SortConfig{Key: SortByScore, Direction: SortDesc}, DefaultSortConfig())
}

func TestSnapshot_ErrorText(t *testing.T) {
	s := &Snapshot{Errors: []*FeedError{
		{Feed: FeedDevices, Err: errors.New("boom")},
		{Feed: FeedCVEs, Err: errors.New("Fetch failed (500): oops")},
	}}

	assert.Equal(t, "Devices fetch failed: boom\nCVEs fetch failed: Fetch failed (500): oops", s.ErrorText())
	assert.True(t, s.FeedFailed(FeedCVEs))
	assert.Empty(t, (&Snapshot{}).ErrorText())
}

func TestUniqueMachines(t *testing.T) {
	devices := []DeviceRecord{
		{ID: "d1", VulnerabilityID: "CVE-1", MachineID: "M1"},
		{ID: "d2", VulnerabilityID: "CVE-2", MachineID: "M1"},
		{ID: "d3", VulnerabilityID: "CVE-2", MachineID: "M2"},
	}
	assert.Equal(t, 2, UniqueMachines(devices))
	assert.Equal(t, 0, UniqueMachines(nil))
}

func TestSnapshot_Err(t *testing.T) {
	cause := errors.New("connection refused")
	s := &Snapshot{Errors: []*FeedError{{Feed: FeedDevices, Err: cause}}}

	err := s.Err()
	assert.ErrorIs(t, err, cause)

	var fe *FeedError
	assert.True(t, errors.As(err, &fe))
	assert.Equal(t, FeedDevices, fe.Feed)

	assert.NoError(t, (&Snapshot{}).Err())
}
