package domain

// ConsolidatedRow is the per-vulnerability aggregate shown in the inventory:
// vulnerability metadata plus the distinct machines exposed to it.
type ConsolidatedRow struct {
	CVEID            string   `json:"cveId"`
	CVEDescription   string   `json:"cveDescription"`
	CVESeverity      string   `json:"cveSeverity"`
	CVEScore         float64  `json:"cveScore"`
	AffectedMachines []string `json:"affectedMachines"`
}

// AffectedCount returns the number of distinct machines in the row.
func (r ConsolidatedRow) AffectedCount() int {
	return len(r.AffectedMachines)
}
