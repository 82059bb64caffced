package domain

import "strings"

// SortKey identifies an inventory column that can be sorted on.
type SortKey string

const (
	SortByCVE      SortKey = "cve"
	SortBySeverity SortKey = "severity"
	SortByScore    SortKey = "score"
	SortByAffected SortKey = "affected"
)

// SortKeys lists every supported key in column order.
var SortKeys = []SortKey{SortByCVE, SortBySeverity, SortByScore, SortByAffected}

// SortDirection is either ascending or descending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortConfig is the active sort selection of an inventory view.
type SortConfig struct {
	Key       SortKey       `json:"key"`
	Direction SortDirection `json:"direction"`
}

// DefaultSortConfig is the selection a new session starts with.
func DefaultSortConfig() SortConfig {
	return SortConfig{Key: SortByScore, Direction: SortDesc}
}

// ParseSortKey maps user input to a SortKey. The second return value is
// false when the input is not a known key.
func ParseSortKey(s string) (SortKey, bool) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range SortKeys {
		if k == known {
			return k, true
		}
	}
	return "", false
}

// ParseSortDirection maps user input to a SortDirection.
func ParseSortDirection(s string) (SortDirection, bool) {
	switch SortDirection(strings.ToLower(strings.TrimSpace(s))) {
	case SortAsc:
		return SortAsc, true
	case SortDesc:
		return SortDesc, true
	}
	return "", false
}

// Opposite returns the reversed direction.
func (d SortDirection) Opposite() SortDirection {
	if d == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// Label returns the column header for the key.
func (k SortKey) Label() string {
	switch k {
	case SortByCVE:
		return "CVE"
	case SortBySeverity:
		return "Severity"
	case SortByAffected:
		return "Affected Devices"
	default:
		return "Score"
	}
}

var severityRanks = map[string]int{
	"critical": 4,
	"high":     3,
	"medium":   2,
	"low":      1,
}

// SeverityRank maps a qualitative severity label to its ordinal rank.
// Matching is case-insensitive and ignores surrounding whitespace; unknown
// or empty labels rank 0.
func SeverityRank(label string) int {
	return severityRanks[strings.ToLower(strings.TrimSpace(label))]
}
