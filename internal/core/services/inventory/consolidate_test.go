package inventory

import (
	"testing"

	"github.com/lcalzada-xor/vulnboard/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dev(id, cve, machine string) domain.DeviceRecord {
	return domain.DeviceRecord{ID: id, VulnerabilityID: cve, MachineID: machine}
}

func TestConsolidate_DeduplicatesMachines(t *testing.T) {
	devices := []domain.DeviceRecord{
		dev("d1", "CVE-1", "M1"),
		dev("d2", "CVE-1", "M1"),
		dev("d3", "CVE-2", "M2"),
	}
	vulns := []domain.VulnerabilityRecord{
		{ID: "CVE-1", Score: 9.8, Severity: "Critical", Description: "remote code execution"},
		{ID: "CVE-2", Score: 5.0, Severity: "Medium", Description: "information disclosure"},
	}

	rows := Consolidate(devices, vulns)

	require.Len(t, rows, 2)
	assert.Equal(t, "CVE-1", rows[0].CVEID)
	assert.Equal(t, []string{"M1"}, rows[0].AffectedMachines)
	assert.Equal(t, "Critical", rows[0].CVESeverity)
	assert.Equal(t, 9.8, rows[0].CVEScore)
	assert.Equal(t, "CVE-2", rows[1].CVEID)
	assert.Equal(t, []string{"M2"}, rows[1].AffectedMachines)
}

func TestConsolidate_UnknownVulnerabilityUsesFallbacks(t *testing.T) {
	rows := Consolidate([]domain.DeviceRecord{dev("d1", "CVE-9", "M1")}, nil)

	require.Len(t, rows, 1)
	assert.Equal(t, domain.ConsolidatedRow{
		CVEID:            "CVE-9",
		CVEDescription:   "No description available.",
		CVESeverity:      "Unknown",
		CVEScore:         0,
		AffectedMachines: []string{"M1"},
	}, rows[0])
}

func TestConsolidate_RowsAreDeviceDriven(t *testing.T) {
	vulns := []domain.VulnerabilityRecord{
		{ID: "CVE-1", Score: 7},
		{ID: "CVE-ORPHAN", Score: 10},
	}
	rows := Consolidate([]domain.DeviceRecord{dev("d1", "CVE-1", "M1")}, vulns)

	require.Len(t, rows, 1)
	assert.Equal(t, "CVE-1", rows[0].CVEID)

	assert.Empty(t, Consolidate(nil, vulns))
}

func TestConsolidate_FirstSeenMachineOrder(t *testing.T) {
	devices := []domain.DeviceRecord{
		dev("d1", "CVE-1", "M3"),
		dev("d2", "CVE-1", "M1"),
		dev("d3", "CVE-1", "M3"),
		dev("d4", "CVE-1", "M2"),
		dev("d5", "CVE-1", "M1"),
	}

	rows := Consolidate(devices, nil)

	require.Len(t, rows, 1)
	assert.Equal(t, []string{"M3", "M1", "M2"}, rows[0].AffectedMachines)
}

func TestConsolidate_DefaultOrdering(t *testing.T) {
	devices := []domain.DeviceRecord{
		dev("d1", "CVE-B", "M1"),
		dev("d2", "CVE-LOW", "M1"),
		dev("d3", "CVE-A", "M2"),
		dev("d4", "CVE-TOP", "M3"),
		dev("d5", "CVE-MISSING", "M4"),
	}
	vulns := []domain.VulnerabilityRecord{
		{ID: "CVE-A", Score: 7.5},
		{ID: "CVE-B", Score: 7.5},
		{ID: "CVE-LOW", Score: 2.1},
		{ID: "CVE-TOP", Score: 10},
	}

	rows := Consolidate(devices, vulns)

	var ids []string
	for _, r := range rows {
		ids = append(ids, r.CVEID)
	}
	assert.Equal(t, []string{"CVE-TOP", "CVE-A", "CVE-B", "CVE-LOW", "CVE-MISSING"}, ids)

	for i := 1; i < len(rows); i++ {
		a, b := rows[i-1], rows[i]
		if a.CVEScore == b.CVEScore {
			assert.Less(t, a.CVEID, b.CVEID)
		} else {
			assert.Greater(t, a.CVEScore, b.CVEScore)
		}
	}
}

func TestConsolidate_DuplicateVulnerabilityLastWriteWins(t *testing.T) {
	vulns := []domain.VulnerabilityRecord{
		{ID: "CVE-1", Score: 1, Description: "old"},
		{ID: "CVE-1", Score: 8, Description: "new"},
	}

	rows := Consolidate([]domain.DeviceRecord{dev("d1", "CVE-1", "M1")}, vulns)

	require.Len(t, rows, 1)
	assert.Equal(t, "new", rows[0].CVEDescription)
	assert.Equal(t, 8.0, rows[0].CVEScore)
}

func TestConsolidate_DoesNotMutateInputs(t *testing.T) {
	devices := []domain.DeviceRecord{
		dev("d1", "CVE-LOW", "M1"),
		dev("d2", "CVE-HIGH", "M2"),
	}
	vulns := []domain.VulnerabilityRecord{
		{ID: "CVE-LOW", Score: 1},
		{ID: "CVE-HIGH", Score: 9},
	}
	devicesCopy := append([]domain.DeviceRecord(nil), devices...)
	vulnsCopy := append([]domain.VulnerabilityRecord(nil), vulns...)

	first := Consolidate(devices, vulns)
	second := Consolidate(devices, vulns)

	assert.Equal(t, devicesCopy, devices)
	assert.Equal(t, vulnsCopy, vulns)
	assert.Equal(t, first, second)
}
