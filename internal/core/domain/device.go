package domain

// Product describes the software a device record was scanned for.
type Product struct {
	Name    string `json:"name"`
	Vendor  string `json:"vendor"`
	Version string `json:"version"`
}

// DeviceRecord is the normalized shape of a device exposure entry: one
// machine affected by one vulnerability.
type DeviceRecord struct {
	ID              string  `json:"id"`
	VulnerabilityID string  `json:"cveId"`
	MachineID       string  `json:"machineId"`
	FixingKBID      string  `json:"fixingKbId,omitempty"`
	Product         Product `json:"product"`
	Severity        string  `json:"severity"` // as reported by the device feed, not used for ranking
}

// UniqueMachines returns the number of distinct machine identifiers across
// the given device records.
func UniqueMachines(devices []DeviceRecord) int {
	seen := make(map[string]struct{}, len(devices))
	for _, d := range devices {
		seen[d.MachineID] = struct{}{}
	}
	return len(seen)
}
