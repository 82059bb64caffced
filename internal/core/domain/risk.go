package domain

import "time"

// SeverityStats breaks the inventory down by normalized severity.
type SeverityStats struct {
	Total     int `json:"total"`
	Critical  int `json:"critical"`
	High      int `json:"high"`
	Medium    int `json:"medium"`
	Low       int `json:"low"`
	Unknown   int `json:"unknown"`
	Exposures int `json:"exposures"` // distinct (CVE, machine) pairs
}

// RiskItem ranks a single CVE by how much exposure it represents.
type RiskItem struct {
	Rank            int     `json:"rank"`
	CVEID           string  `json:"cveId"`
	Severity        string  `json:"severity"`
	Score           float64 `json:"score"`
	AffectedDevices int     `json:"affectedDevices"`
	Impact          string  `json:"impact"`
	Likelihood      string  `json:"likelihood"`
	RiskScore       float64 `json:"riskScore"`
}

// Recommendation is a prioritized remediation step, usually deploying one
// fixing update.
type Recommendation struct {
	Priority        string   `json:"priority"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Actions         []string `json:"actions"`
	FixingKBID      string   `json:"fixingKbId,omitempty"`
	CVEs            []string `json:"cves,omitempty"`
	Machines        int      `json:"machines"`
	ImpactReduction float64  `json:"impactReduction"` // percent of exposures removed
}

// ExecutiveSummary condenses a snapshot into headline risk figures.
type ExecutiveSummary struct {
	RefreshID       string           `json:"refreshId"`
	GeneratedAt     time.Time        `json:"generatedAt"`
	RiskScore       float64          `json:"riskScore"`
	RiskLevel       string           `json:"riskLevel"`
	TotalDevices    int              `json:"totalDevices"`
	Stats           SeverityStats    `json:"stats"`
	TopRisks        []RiskItem       `json:"topRisks"`
	Recommendations []Recommendation `json:"recommendations"`
}
