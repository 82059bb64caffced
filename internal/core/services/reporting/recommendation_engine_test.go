package reporting

import (
	"testing"

	"github.com/lcalzada-xor/vulnboard/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func device(cve, machine, kb string) domain.DeviceRecord {
	return domain.DeviceRecord{VulnerabilityID: cve, MachineID: machine, FixingKBID: kb}
}

func TestGenerateRecommendations_GroupsByFixingKB(t *testing.T) {
	re := NewRecommendationEngine()
	devices := []domain.DeviceRecord{
		device("CVE-1", "m1", "KB100"),
		device("CVE-1", "m2", "KB100"),
		device("CVE-2", "m1", "KB100"),
		device("CVE-3", "m3", "KB200"),
		device("CVE-4", "m4", ""),
	}
	rows := []domain.ConsolidatedRow{
		row("CVE-1", "MEDIUM", 5.0, "m1", "m2"),
		row("CVE-2", "LOW", 2.0, "m1"),
		row("CVE-3", "CRITICAL", 9.8, "m3"),
		row("CVE-4", "HIGH", 7.0, "m4"),
	}

	recs := re.GenerateRecommendations(devices, rows)
	require.Len(t, recs, 3)

	// Severity outranks exposure count.
	assert.Equal(t, "KB200", recs[0].FixingKBID)
	assert.Equal(t, "critical", recs[0].Priority)
	assert.Equal(t, "Deploy KB200", recs[0].Title)
	assert.InDelta(t, 20.0, recs[0].ImpactReduction, 0.001)

	assert.Equal(t, "KB100", recs[1].FixingKBID)
	assert.Equal(t, "medium", recs[1].Priority)
	assert.Equal(t, []string{"CVE-1", "CVE-2"}, recs[1].CVEs)
	assert.Equal(t, 2, recs[1].Machines)
	assert.InDelta(t, 60.0, recs[1].ImpactReduction, 0.001)
	assert.Contains(t, recs[1].Actions[1], "m1, m2")

	assert.Empty(t, recs[2].FixingKBID)
	assert.Equal(t, []string{"CVE-4"}, recs[2].CVEs)
	assert.Equal(t, 1, recs[2].Machines)
}

func TestGenerateRecommendations_Limit(t *testing.T) {
	re := NewRecommendationEngine()
	var devices []domain.DeviceRecord
	var rows []domain.ConsolidatedRow
	for _, id := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		cve := "CVE-" + id
		devices = append(devices, device(cve, "m1", "KB-"+id))
		rows = append(rows, row(cve, "HIGH", 7.0, "m1"))
	}

	recs := re.GenerateRecommendations(devices, rows)
	assert.Len(t, recs, maxRecommendations)
	assert.Equal(t, "KB-A", recs[0].FixingKBID)
}

func TestGenerateRecommendations_Empty(t *testing.T) {
	re := NewRecommendationEngine()
	recs := re.GenerateRecommendations(nil, nil)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestGenerateRecommendations_TruncatesMachineList(t *testing.T) {
	re := NewRecommendationEngine()
	machines := []string{"m1", "m2", "m3", "m4", "m5", "m6", "m7"}
	var devices []domain.DeviceRecord
	for _, m := range machines {
		devices = append(devices, device("CVE-1", m, "KB1"))
	}
	rows := []domain.ConsolidatedRow{row("CVE-1", "HIGH", 7.0, machines...)}

	recs := re.GenerateRecommendations(devices, rows)
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0].Actions[1], "and 2 more")
	assert.NotContains(t, recs[0].Actions[1], "m6")
	assert.Equal(t, 100.0, recs[0].ImpactReduction)
}
