package domain

// Fallback values used when a device references a vulnerability that is
// missing from the vulnerability feed.
const (
	FallbackDescription = "No description available."
	FallbackSeverity    = "Unknown"
	FallbackScore       = 0.0
)

// UnknownSeverity is the label the NVD normalizer assigns when a record
// carries no CVSS v2 metric.
const UnknownSeverity = "UNKNOWN"

// VulnerabilityRecord is the normalized shape of a CVE entry coming from a
// vulnerability feed (NVD API, local SQLite CVE database, mock).
type VulnerabilityRecord struct {
	ID          string  `json:"cveId"`          // e.g., "CVE-2020-3111"
	Description string  `json:"cveDescription"` // English description when available
	Severity    string  `json:"cveSeverity"`    // free-text label, e.g. "HIGH"
	Score       float64 `json:"cveScore"`       // CVSS base score 0-10
}
