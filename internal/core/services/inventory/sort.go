package inventory

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/lcalzada-xor/vulnboard/internal/core/domain"
)

// SortRows returns a reordered copy of rows according to cfg. The input
// slice is left untouched. Unknown keys sort by score; equal elements keep
// their relative input order.
func SortRows(rows []domain.ConsolidatedRow, cfg domain.SortConfig) []domain.ConsolidatedRow {
	sorted := make([]domain.ConsolidatedRow, len(rows))
	copy(sorted, rows)

	cmp := comparator(cfg.Key)
	sign := 1
	if cfg.Direction == domain.SortDesc {
		sign = -1
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sign*cmp(sorted[i], sorted[j]) < 0
	})
	return sorted
}

// comparator returns a three-way natural-order comparison for key.
func comparator(key domain.SortKey) func(a, b domain.ConsolidatedRow) int {
	switch key {
	case domain.SortByCVE:
		// Collator keeps internal buffers, so each sort gets its own.
		c := collate.New(language.Und)
		return func(a, b domain.ConsolidatedRow) int {
			return c.CompareString(a.CVEID, b.CVEID)
		}
	case domain.SortBySeverity:
		return func(a, b domain.ConsolidatedRow) int {
			return compareInts(domain.SeverityRank(a.CVESeverity), domain.SeverityRank(b.CVESeverity))
		}
	case domain.SortByAffected:
		return func(a, b domain.ConsolidatedRow) int {
			return compareInts(a.AffectedCount(), b.AffectedCount())
		}
	default:
		return func(a, b domain.ConsolidatedRow) int {
			return compareFloats(a.CVEScore, b.CVEScore)
		}
	}
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
