package reporting

import (
	"math"
	"testing"

	"github.com/lcalzada-xor/vulnboard/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(id, severity string, score float64, machines ...string) domain.ConsolidatedRow {
	return domain.ConsolidatedRow{
		CVEID:            id,
		CVESeverity:      severity,
		CVEScore:         score,
		AffectedMachines: machines,
	}
}

func TestCalculateOverallRisk(t *testing.T) {
	rc := NewRiskCalculator()

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, 0.0, rc.CalculateOverallRisk(nil, 10))
	})

	t.Run("weighted by exposure", func(t *testing.T) {
		rows := []domain.ConsolidatedRow{
			row("CVE-1", "HIGH", 8.0, "m1", "m2", "m3"),
			row("CVE-2", "LOW", 2.0, "m1"),
		}
		// (8*3 + 2*1) / 4 = 6.5, device factor 1.02
		assert.InDelta(t, 6.63, rc.CalculateOverallRisk(rows, 2), 0.001)
	})

	t.Run("capped at ten", func(t *testing.T) {
		rows := []domain.ConsolidatedRow{row("CVE-1", "CRITICAL", 9.8, "m1")}
		assert.Equal(t, 10.0, rc.CalculateOverallRisk(rows, 500))
	})

	t.Run("non-finite scores count as zero", func(t *testing.T) {
		rows := []domain.ConsolidatedRow{
			row("CVE-1", "HIGH", math.NaN(), "m1"),
			row("CVE-2", "HIGH", 6.0, "m1"),
		}
		assert.InDelta(t, 3.09, rc.CalculateOverallRisk(rows, 3), 0.001)
	})
}

func TestGetRiskLevel(t *testing.T) {
	rc := NewRiskCalculator()
	tests := []struct {
		score float64
		want  string
	}{
		{9.5, "Critical"},
		{8.0, "Critical"},
		{6.0, "High"},
		{4.5, "Medium"},
		{0, "Low"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rc.GetRiskLevel(tt.score), "score %.1f", tt.score)
	}
}

func TestCalculateTopRisks(t *testing.T) {
	rc := NewRiskCalculator()
	rows := []domain.ConsolidatedRow{
		row("CVE-A", "MEDIUM", 5.0, "m1", "m2"),
		row("CVE-B", "CRITICAL", 9.0, "m1"),
		row("CVE-C", "HIGH", 4.5, "m1", "m2"),
		row("CVE-D", "LOW", 1.0, "m1"),
		row("CVE-E", "HIGH", 7.5, "m1", "m2", "m3", "m4", "m5", "m6", "m7", "m8", "m9", "m10"),
	}

	risks := rc.CalculateTopRisks(rows, 3)
	require.Len(t, risks, 3)

	assert.Equal(t, "CVE-E", risks[0].CVEID)
	assert.Equal(t, 75.0, risks[0].RiskScore)
	assert.Equal(t, 1, risks[0].Rank)
	assert.Contains(t, risks[0].Likelihood, "Very High")
	assert.Contains(t, risks[0].Impact, "High")

	// CVE-B and CVE-C both score 9; the id breaks the tie.
	assert.Equal(t, "CVE-A", risks[1].CVEID)
	assert.Equal(t, "CVE-B", risks[2].CVEID)
	assert.Equal(t, 3, risks[2].Rank)

	assert.Len(t, rc.CalculateTopRisks(rows, 0), len(rows))
	assert.Empty(t, rc.CalculateTopRisks(nil, 5))
}

func TestSeverityBreakdown(t *testing.T) {
	rc := NewRiskCalculator()
	rows := []domain.ConsolidatedRow{
		row("CVE-1", "critical", 9.8, "m1", "m2"),
		row("CVE-2", " HIGH ", 7.0, "m1"),
		row("CVE-3", "MEDIUM", 5.0, "m3"),
		row("CVE-4", "LOW", 2.0, "m1"),
		row("CVE-5", domain.FallbackSeverity, 0, "m4"),
	}

	stats := rc.SeverityBreakdown(rows)
	assert.Equal(t, domain.SeverityStats{
		Total:     5,
		Critical:  1,
		High:      1,
		Medium:    1,
		Low:       1,
		Unknown:   1,
		Exposures: 6,
	}, stats)
}
