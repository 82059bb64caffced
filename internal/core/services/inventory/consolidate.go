// Package inventory joins device exposures with vulnerability metadata and
// orders the resulting rows. Everything here is pure: no I/O, no shared
// state, inputs are never mutated.
package inventory

import (
	"sort"

	"github.com/lcalzada-xor/vulnboard/internal/core/domain"
)

// machineSet keeps distinct machine identifiers in first-seen order.
type machineSet struct {
	seen  map[string]struct{}
	order []string
}

func (s *machineSet) add(machineID string) {
	if _, ok := s.seen[machineID]; ok {
		return
	}
	s.seen[machineID] = struct{}{}
	s.order = append(s.order, machineID)
}

// Consolidate produces one row per distinct vulnerability identifier seen
// among devices. Vulnerability fields come from the matching record, or the
// documented fallbacks when the feed has no such record. Rows are returned
// in the default order: score descending, then CVE identifier ascending.
func Consolidate(devices []domain.DeviceRecord, vulns []domain.VulnerabilityRecord) []domain.ConsolidatedRow {
	byID := make(map[string]domain.VulnerabilityRecord, len(vulns))
	for _, v := range vulns {
		byID[v.ID] = v // last write wins
	}

	sets := make(map[string]*machineSet)
	var order []string
	for _, d := range devices {
		set, ok := sets[d.VulnerabilityID]
		if !ok {
			set = &machineSet{seen: make(map[string]struct{})}
			sets[d.VulnerabilityID] = set
			order = append(order, d.VulnerabilityID)
		}
		set.add(d.MachineID)
	}

	rows := make([]domain.ConsolidatedRow, 0, len(order))
	for _, cveID := range order {
		row := domain.ConsolidatedRow{
			CVEID:            cveID,
			CVEDescription:   domain.FallbackDescription,
			CVESeverity:      domain.FallbackSeverity,
			CVEScore:         domain.FallbackScore,
			AffectedMachines: sets[cveID].order,
		}
		if v, ok := byID[cveID]; ok {
			row.CVEDescription = v.Description
			row.CVESeverity = v.Severity
			row.CVEScore = v.Score
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return defaultLess(rows[i], rows[j])
	})
	return rows
}

// defaultLess is the default inventory ordering.
func defaultLess(a, b domain.ConsolidatedRow) bool {
	if a.CVEScore != b.CVEScore {
		return a.CVEScore > b.CVEScore
	}
	return a.CVEID < b.CVEID
}
