package reporting

import (
	"math"
	"sort"

	"github.com/lcalzada-xor/vulnboard/internal/core/domain"
)

// RiskCalculator provides methods for calculating security risk scores
type RiskCalculator struct{}

// NewRiskCalculator creates a new risk calculator instance
func NewRiskCalculator() *RiskCalculator {
	return &RiskCalculator{}
}

// CalculateOverallRisk calculates the overall risk score (0-10): the
// exposure-weighted average CVE score scaled by the size of the estate.
func (rc *RiskCalculator) CalculateOverallRisk(rows []domain.ConsolidatedRow, devices int) float64 {
	var weighted, exposures float64
	for _, row := range rows {
		n := float64(row.AffectedCount())
		weighted += finite(row.CVEScore) * n
		exposures += n
	}
	if exposures == 0 {
		return 0.0
	}

	avgRisk := weighted / exposures

	// Device factor: 1.0 + (devices / 100), capped at 2.0 for 100+ devices
	deviceFactor := 1.0 + math.Min(float64(devices)/100.0, 1.0)

	return math.Min(avgRisk*deviceFactor, 10.0)
}

// GetRiskLevel converts numeric score to human-readable level
func (rc *RiskCalculator) GetRiskLevel(score float64) string {
	switch {
	case score >= 8.0:
		return "Critical"
	case score >= 6.0:
		return "High"
	case score >= 4.0:
		return "Medium"
	default:
		return "Low"
	}
}

// CalculateTopRisks ranks CVEs by score times affected machines. A
// non-positive limit returns every row.
func (rc *RiskCalculator) CalculateTopRisks(rows []domain.ConsolidatedRow, limit int) []domain.RiskItem {
	risks := make([]domain.RiskItem, 0, len(rows))
	for _, row := range rows {
		score := finite(row.CVEScore)
		risks = append(risks, domain.RiskItem{
			CVEID:           row.CVEID,
			Severity:        row.CVESeverity,
			Score:           score,
			AffectedDevices: row.AffectedCount(),
			Impact:          rc.getImpactLevel(score),
			Likelihood:      rc.getLikelihoodLevel(row.AffectedCount()),
			RiskScore:       score * float64(row.AffectedCount()),
		})
	}

	sort.SliceStable(risks, func(i, j int) bool {
		if risks[i].RiskScore != risks[j].RiskScore {
			return risks[i].RiskScore > risks[j].RiskScore
		}
		return risks[i].CVEID < risks[j].CVEID
	})

	if limit > 0 && len(risks) > limit {
		risks = risks[:limit]
	}
	for i := range risks {
		risks[i].Rank = i + 1
	}
	return risks
}

// SeverityBreakdown counts rows per normalized severity
func (rc *RiskCalculator) SeverityBreakdown(rows []domain.ConsolidatedRow) domain.SeverityStats {
	stats := domain.SeverityStats{Total: len(rows)}
	for _, row := range rows {
		stats.Exposures += row.AffectedCount()
		switch domain.SeverityRank(row.CVESeverity) {
		case 4:
			stats.Critical++
		case 3:
			stats.High++
		case 2:
			stats.Medium++
		case 1:
			stats.Low++
		default:
			stats.Unknown++
		}
	}
	return stats
}

// getImpactLevel returns a human-readable impact description based on score
func (rc *RiskCalculator) getImpactLevel(score float64) string {
	switch {
	case score >= 9:
		return "Severe - Complete compromise possible"
	case score >= 7:
		return "High - Significant data exposure"
	case score >= 4:
		return "Medium - Limited exposure"
	default:
		return "Low - Minimal impact"
	}
}

// getLikelihoodLevel returns a human-readable likelihood description based on affected device count
func (rc *RiskCalculator) getLikelihoodLevel(affectedCount int) string {
	switch {
	case affectedCount >= 10:
		return "Very High - Widespread vulnerability"
	case affectedCount >= 5:
		return "High - Multiple targets"
	case affectedCount >= 2:
		return "Medium - Several targets"
	default:
		return "Low - Single target"
	}
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
