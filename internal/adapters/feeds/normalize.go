package feeds

import (
	"math"

	"github.com/lcalzada-xor/vulnboard/internal/core/domain"
)

// NormalizeCVE maps an NVD entry to a VulnerabilityRecord. The English
// description wins, then the first one listed; severity and score come from
// the first CVSS v2 metric and default to "UNKNOWN" and 0.
func NormalizeCVE(entry CVEEntryDTO) domain.VulnerabilityRecord {
	cve := entry.CVE
	rec := domain.VulnerabilityRecord{
		ID:       cve.ID,
		Severity: domain.UnknownSeverity,
	}

	found := false
	for _, d := range cve.Descriptions {
		if d.Lang == "en" {
			rec.Description = d.Value
			found = true
			break
		}
	}
	if !found && len(cve.Descriptions) > 0 {
		rec.Description = cve.Descriptions[0].Value
	}

	if cve.Metrics != nil && len(cve.Metrics.CVSSMetricV2) > 0 {
		v2 := cve.Metrics.CVSSMetricV2[0]
		if v2.BaseSeverity != nil {
			rec.Severity = *v2.BaseSeverity
		}
		if v2.CVSSData != nil && v2.CVSSData.BaseScore != nil {
			rec.Score = finiteOrZero(*v2.CVSSData.BaseScore)
		}
	}

	return rec
}

// NormalizeDevice maps a device DTO to a DeviceRecord.
func NormalizeDevice(dto DeviceDTO) domain.DeviceRecord {
	rec := domain.DeviceRecord{
		ID:              dto.ID,
		VulnerabilityID: dto.CVEID,
		MachineID:       dto.MachineID,
		Product: domain.Product{
			Name:    dto.ProductName,
			Vendor:  dto.ProductVendor,
			Version: dto.ProductVersion,
		},
		Severity: dto.Severity,
	}
	if dto.FixingKBID != nil {
		rec.FixingKBID = *dto.FixingKBID
	}
	return rec
}

func finiteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
