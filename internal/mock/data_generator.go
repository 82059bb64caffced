package mock

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/lcalzada-xor/vulnboard/internal/core/domain"
)

// Products seen on scanned machines
var products = []domain.Product{
	{Name: "Windows 10", Vendor: "Microsoft", Version: "22H2"},
	{Name: "Windows 11", Vendor: "Microsoft", Version: "23H2"},
	{Name: "Windows Server 2019", Vendor: "Microsoft", Version: "1809"},
	{Name: "Edge", Vendor: "Microsoft", Version: "121.0.2277"},
	{Name: "Office 365", Vendor: "Microsoft", Version: "16.0.17126"},
	{Name: "Chrome", Vendor: "Google", Version: "120.0.6099"},
	{Name: "Firefox", Vendor: "Mozilla", Version: "121.0"},
	{Name: "Acrobat Reader", Vendor: "Adobe", Version: "23.008"},
	{Name: "Java SE", Vendor: "Oracle", Version: "8u391"},
	{Name: "OpenSSL", Vendor: "OpenSSL", Version: "3.0.11"},
	{Name: "7-Zip", Vendor: "Igor Pavlov", Version: "23.01"},
	{Name: "Zoom", Vendor: "Zoom", Version: "5.16.10"},
}

// Description fragments for generated CVEs
var weaknesses = []string{
	"Remote code execution", "Elevation of privilege", "Information disclosure",
	"Security feature bypass", "Denial of service", "Spoofing",
	"Heap-based buffer overflow", "Use after free", "Out-of-bounds read",
}

// Machine name prefixes
var machinePrefixes = []string{"WKS", "LAP", "SRV", "VDI"}

// DataGenerator generates mock CVE and device inventory data. The same
// seed always yields the same data.
type DataGenerator struct {
	mu       sync.Mutex
	rand     *rand.Rand
	year     int
	nextCVE  int
	nextRec  int
	vulns    []domain.VulnerabilityRecord
	devices  []domain.DeviceRecord
	machines []string
	// orphans are CVE ids referenced by devices but absent from the CVE feed
	orphans []string
}

// NewDataGenerator creates a new mock data generator
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rand:    rand.New(rand.NewSource(seed)),
		year:    2024,
		nextCVE: 20000,
	}
}

// GenerateCVE creates a mock vulnerability with a CVSS v2 style score.
func (g *DataGenerator) GenerateCVE() domain.VulnerabilityRecord {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.generateCVE()
}

func (g *DataGenerator) generateCVE() domain.VulnerabilityRecord {
	g.nextCVE += 1 + g.rand.Intn(40)
	score := float64(g.rand.Intn(100)+1) / 10
	product := products[g.rand.Intn(len(products))]

	v := domain.VulnerabilityRecord{
		ID:          fmt.Sprintf("CVE-%d-%d", g.year, g.nextCVE),
		Description: fmt.Sprintf("%s vulnerability in %s %s.", weaknesses[g.rand.Intn(len(weaknesses))], product.Vendor, product.Name),
		Severity:    severityFor(score),
		Score:       score,
	}
	g.vulns = append(g.vulns, v)
	return v
}

// GenerateMachine creates a new machine identifier
func (g *DataGenerator) GenerateMachine() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.generateMachine()
}

func (g *DataGenerator) generateMachine() string {
	prefix := machinePrefixes[g.rand.Intn(len(machinePrefixes))]
	id := fmt.Sprintf("%s-%04d", prefix, len(g.machines)+1)
	g.machines = append(g.machines, id)
	return id
}

// GenerateDeviceRecord records that machine is exposed to cveID
func (g *DataGenerator) GenerateDeviceRecord(cveID, machine string) domain.DeviceRecord {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.generateDeviceRecord(cveID, machine)
}

func (g *DataGenerator) generateDeviceRecord(cveID, machine string) domain.DeviceRecord {
	g.nextRec++
	kb := ""
	if g.rand.Float32() < 0.8 {
		kb = fmt.Sprintf("KB50%05d", g.rand.Intn(100000))
	}

	d := domain.DeviceRecord{
		ID:              fmt.Sprintf("rec-%06d", g.nextRec),
		VulnerabilityID: cveID,
		MachineID:       machine,
		FixingKBID:      kb,
		Product:         products[g.rand.Intn(len(products))],
		Severity:        g.severityOf(cveID),
	}
	g.devices = append(g.devices, d)
	return d
}

func (g *DataGenerator) severityOf(cveID string) string {
	for _, v := range g.vulns {
		if v.ID == cveID {
			return v.Severity
		}
	}
	return ""
}

// GenerateScenario creates a complete mock scenario:
//   - basic: a small estate where every referenced CVE is known
//   - crowded: many machines and CVEs, with repeated exposures
//   - sparse: a third of the referenced CVEs are missing from the CVE feed
func (g *DataGenerator) GenerateScenario(scenario string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var numCVEs, numMachines, exposures int
	orphanRate := float32(0)

	switch scenario {
	case "crowded":
		numCVEs, numMachines, exposures = 120, 80, 600
	case "sparse":
		numCVEs, numMachines, exposures = 15, 10, 45
		orphanRate = 0.33
	default:
		numCVEs, numMachines, exposures = 12, 8, 30
	}

	for i := 0; i < numCVEs; i++ {
		g.generateCVE()
	}
	for i := 0; i < numMachines; i++ {
		g.generateMachine()
	}

	known := len(g.vulns)
	if orphanRate > 0 {
		cut := known - int(float32(known)*orphanRate)
		for _, v := range g.vulns[cut:] {
			g.orphans = append(g.orphans, v.ID)
		}
		g.vulns = g.vulns[:cut]
	}

	for i := 0; i < exposures; i++ {
		var cveID string
		if len(g.orphans) > 0 && g.rand.Float32() < orphanRate {
			cveID = g.orphans[g.rand.Intn(len(g.orphans))]
		} else {
			cveID = g.vulns[g.rand.Intn(len(g.vulns))].ID
		}
		g.generateDeviceRecord(cveID, g.machines[g.rand.Intn(len(g.machines))])
	}
}

// Vulnerabilities returns a copy of the CVE catalog
func (g *DataGenerator) Vulnerabilities() []domain.VulnerabilityRecord {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]domain.VulnerabilityRecord{}, g.vulns...)
}

// Devices returns a copy of the device records
func (g *DataGenerator) Devices() []domain.DeviceRecord {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]domain.DeviceRecord{}, g.devices...)
}

// Machines returns the generated machine identifiers
func (g *DataGenerator) Machines() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string{}, g.machines...)
}

// SimulateActivity simulates a scan cycle: new exposures are found, some
// are remediated and occasionally a new CVE is published.
func (g *DataGenerator) SimulateActivity() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.vulns) == 0 || len(g.machines) == 0 {
		return
	}

	// 20% chance a new CVE is published and hits one machine
	if g.rand.Float32() < 0.2 {
		v := g.generateCVE()
		g.generateDeviceRecord(v.ID, g.machines[g.rand.Intn(len(g.machines))])
	}

	// A few new exposures on existing CVEs
	for i := g.rand.Intn(3); i > 0; i-- {
		v := g.vulns[g.rand.Intn(len(g.vulns))]
		g.generateDeviceRecord(v.ID, g.machines[g.rand.Intn(len(g.machines))])
	}

	// 30% chance one exposure is remediated
	if g.rand.Float32() < 0.3 && len(g.devices) > 1 {
		i := g.rand.Intn(len(g.devices))
		g.devices = append(g.devices[:i], g.devices[i+1:]...)
	}
}

func severityFor(score float64) string {
	switch {
	case score >= 9.0:
		return "CRITICAL"
	case score >= 7.0:
		return "HIGH"
	case score >= 4.0:
		return "MEDIUM"
	default:
		return "LOW"
	}
}
