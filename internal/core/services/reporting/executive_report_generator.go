package reporting

import (
	"time"

	"github.com/lcalzada-xor/vulnboard/internal/core/domain"
)

// topRiskLimit is how many CVEs the executive summary ranks.
const topRiskLimit = 5

// ExecutiveReportGenerator generates executive summary reports
type ExecutiveReportGenerator struct {
	riskCalc    *RiskCalculator
	recommender *RecommendationEngine
	now         func() time.Time
}

// NewExecutiveReportGenerator creates a new executive report generator
func NewExecutiveReportGenerator() *ExecutiveReportGenerator {
	return &ExecutiveReportGenerator{
		riskCalc:    NewRiskCalculator(),
		recommender: NewRecommendationEngine(),
		now:         time.Now,
	}
}

// Generate summarizes a snapshot. A nil snapshot yields an empty summary.
func (g *ExecutiveReportGenerator) Generate(snap *domain.Snapshot) *domain.ExecutiveSummary {
	summary := &domain.ExecutiveSummary{
		GeneratedAt:     g.now(),
		RiskLevel:       g.riskCalc.GetRiskLevel(0),
		TopRisks:        []domain.RiskItem{},
		Recommendations: []domain.Recommendation{},
	}
	if snap == nil {
		return summary
	}

	deviceCount := domain.UniqueMachines(snap.Devices)
	riskScore := g.riskCalc.CalculateOverallRisk(snap.Rows, deviceCount)

	summary.RefreshID = snap.RefreshID
	summary.RiskScore = riskScore
	summary.RiskLevel = g.riskCalc.GetRiskLevel(riskScore)
	summary.TotalDevices = deviceCount
	summary.Stats = g.riskCalc.SeverityBreakdown(snap.Rows)
	summary.TopRisks = g.riskCalc.CalculateTopRisks(snap.Rows, topRiskLimit)
	summary.Recommendations = g.recommender.GenerateRecommendations(snap.Devices, snap.Rows)
	return summary
}
