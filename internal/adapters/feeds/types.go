package feeds

// CVEEntryDTO is one element of the NVD 2.0 "vulnerabilities" array.
type CVEEntryDTO struct {
	CVE CVEItemDTO `json:"cve"`
}

type CVEItemDTO struct {
	ID           string           `json:"id"`
	Descriptions []DescriptionDTO `json:"descriptions,omitempty"`
	Metrics      *MetricsDTO      `json:"metrics,omitempty"`
}

type DescriptionDTO struct {
	Lang  string `json:"lang"`
	Value string `json:"value"`
}

type MetricsDTO struct {
	CVSSMetricV2 []CVSSMetricV2DTO `json:"cvssMetricV2,omitempty"`
}

type CVSSMetricV2DTO struct {
	BaseSeverity *string      `json:"baseSeverity,omitempty"`
	CVSSData     *CVSSDataDTO `json:"cvssData,omitempty"`
}

type CVSSDataDTO struct {
	BaseScore *float64 `json:"baseScore,omitempty"`
}

// DeviceDTO is one element of the device endpoint "value" array.
type DeviceDTO struct {
	ID             string  `json:"id"`
	CVEID          string  `json:"cveId"`
	MachineID      string  `json:"machineId"`
	FixingKBID     *string `json:"fixingKbId"`
	ProductName    string  `json:"productName"`
	ProductVendor  string  `json:"productVendor"`
	ProductVersion string  `json:"productVersion"`
	Severity       string  `json:"severity"`
}
