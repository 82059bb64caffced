package reporting

import (
	"math"
	"strconv"
	"strings"

	"github.com/lcalzada-xor/vulnboard/internal/core/domain"
)

var severityLabels = map[string]string{
	"critical": "Critical",
	"high":     "High",
	"medium":   "Medium",
	"low":      "Low",
}

// SeverityLabel returns the display label for a severity: the canonical
// spelling for the four known levels, otherwise the raw label, or "Unknown"
// when empty.
func SeverityLabel(severity string) string {
	if label, ok := severityLabels[strings.ToLower(strings.TrimSpace(severity))]; ok {
		return label
	}
	if severity == "" {
		return domain.FallbackSeverity
	}
	return severity
}

// FormatScore renders a score with one decimal, or "N/A" when not finite.
func FormatScore(score float64) string {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return "N/A"
	}
	return strconv.FormatFloat(score, 'f', 1, 64)
}
