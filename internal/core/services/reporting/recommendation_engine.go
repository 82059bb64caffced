package reporting

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lcalzada-xor/vulnboard/internal/core/domain"
)

// maxRecommendations bounds the list returned to the dashboard and PDF.
const maxRecommendations = 5

// RecommendationEngine generates actionable remediation recommendations
type RecommendationEngine struct{}

// NewRecommendationEngine creates a new recommendation engine instance
func NewRecommendationEngine() *RecommendationEngine {
	return &RecommendationEngine{}
}

type kbGroup struct {
	kb        string
	cves      map[string]struct{}
	machines  map[string]struct{}
	exposures map[[2]string]struct{}
	maxRank   int
}

// GenerateRecommendations groups device exposures by the update that fixes
// them and ranks the updates by severity, then by exposures removed.
// Exposures without a fixing update yield one investigation item.
func (re *RecommendationEngine) GenerateRecommendations(
	devices []domain.DeviceRecord,
	rows []domain.ConsolidatedRow,
) []domain.Recommendation {
	severity := make(map[string]string, len(rows))
	total := 0
	for _, row := range rows {
		severity[row.CVEID] = row.CVESeverity
		total += row.AffectedCount()
	}
	if total == 0 {
		return []domain.Recommendation{}
	}

	groups := make(map[string]*kbGroup)
	unfixed := make(map[[2]string]struct{})
	unfixedCVEs := make(map[string]struct{})
	for _, d := range devices {
		pair := [2]string{d.VulnerabilityID, d.MachineID}
		kb := strings.TrimSpace(d.FixingKBID)
		if kb == "" {
			unfixed[pair] = struct{}{}
			unfixedCVEs[d.VulnerabilityID] = struct{}{}
			continue
		}
		g, ok := groups[kb]
		if !ok {
			g = &kbGroup{
				kb:        kb,
				cves:      make(map[string]struct{}),
				machines:  make(map[string]struct{}),
				exposures: make(map[[2]string]struct{}),
			}
			groups[kb] = g
		}
		g.cves[d.VulnerabilityID] = struct{}{}
		g.machines[d.MachineID] = struct{}{}
		g.exposures[pair] = struct{}{}
		if r := domain.SeverityRank(severity[d.VulnerabilityID]); r > g.maxRank {
			g.maxRank = r
		}
	}

	ordered := make([]*kbGroup, 0, len(groups))
	for _, g := range groups {
		ordered = append(ordered, g)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].maxRank != ordered[j].maxRank {
			return ordered[i].maxRank > ordered[j].maxRank
		}
		if len(ordered[i].exposures) != len(ordered[j].exposures) {
			return len(ordered[i].exposures) > len(ordered[j].exposures)
		}
		return ordered[i].kb < ordered[j].kb
	})

	recommendations := make([]domain.Recommendation, 0, len(ordered)+1)
	for _, g := range ordered {
		recommendations = append(recommendations, re.recommendationForKB(g, total))
	}

	if len(unfixed) > 0 {
		recommendations = append(recommendations, domain.Recommendation{
			Priority:    "medium",
			Title:       "Investigate vulnerabilities without a vendor fix",
			Description: fmt.Sprintf("%d exposures across %d CVEs have no fixing update listed.", len(unfixed), len(unfixedCVEs)),
			Actions: []string{
				"Check the vendor advisory for each CVE",
				"Apply configuration mitigations where no patch exists",
				"Isolate or retire affected machines if the risk is unacceptable",
			},
			CVEs:            sortedKeys(unfixedCVEs),
			Machines:        distinctMachines(unfixed),
			ImpactReduction: percent(len(unfixed), total),
		})
	}

	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}
	return recommendations
}

func (re *RecommendationEngine) recommendationForKB(g *kbGroup, total int) domain.Recommendation {
	machines := sortedKeys(g.machines)
	shown := machines
	if len(shown) > 5 {
		shown = append(shown[:5:5], fmt.Sprintf("and %d more", len(machines)-5))
	}
	return domain.Recommendation{
		Priority:    priorityFor(g.maxRank),
		Title:       "Deploy " + g.kb,
		Description: fmt.Sprintf("Fixes %d CVEs on %d machines.", len(g.cves), len(g.machines)),
		Actions: []string{
			fmt.Sprintf("Approve %s in the update catalog", g.kb),
			"Deploy to affected machines: " + strings.Join(shown, ", "),
			"Refresh the dashboard after the next scan to confirm remediation",
		},
		FixingKBID:      g.kb,
		CVEs:            sortedKeys(g.cves),
		Machines:        len(g.machines),
		ImpactReduction: percent(len(g.exposures), total),
	}
}

func priorityFor(rank int) string {
	switch rank {
	case 4:
		return "critical"
	case 3:
		return "high"
	case 2:
		return "medium"
	default:
		return "low"
	}
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	p := float64(part) * 100 / float64(total)
	if p > 100 {
		return 100
	}
	return p
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func distinctMachines(pairs map[[2]string]struct{}) int {
	seen := make(map[string]struct{}, len(pairs))
	for p := range pairs {
		seen[p[1]] = struct{}{}
	}
	return len(seen)
}
