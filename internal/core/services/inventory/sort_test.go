package inventory

import (
	"testing"

	"github.com/lcalzada-xor/vulnboard/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func ids(rows []domain.ConsolidatedRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.CVEID)
	}
	return out
}

func machines(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = string(rune('a' + i))
	}
	return out
}

func sampleRows() []domain.ConsolidatedRow {
	return []domain.ConsolidatedRow{
		{CVEID: "CVE-2021-0002", CVESeverity: "medium", CVEScore: 5.5, AffectedMachines: machines(1)},
		{CVEID: "CVE-2019-1234", CVESeverity: " Critical ", CVEScore: 9.8, AffectedMachines: machines(3)},
		{CVEID: "CVE-2020-0001", CVESeverity: "UNKNOWN", CVEScore: 0, AffectedMachines: machines(2)},
		{CVEID: "CVE-2022-7777", CVESeverity: "Low", CVEScore: 2.0, AffectedMachines: machines(4)},
		{CVEID: "CVE-2018-4444", CVESeverity: "HIGH", CVEScore: 7.2, AffectedMachines: machines(2)},
	}
}

func TestSortRows(t *testing.T) {
	tests := []struct {
		name string
		cfg  domain.SortConfig
		want []string
	}{
		{
			name: "cve ascending",
			cfg:  domain.SortConfig{Key: domain.SortByCVE, Direction: domain.SortAsc},
			want: []string{"CVE-2018-4444", "CVE-2019-1234", "CVE-2020-0001", "CVE-2021-0002", "CVE-2022-7777"},
		},
		{
			name: "cve descending",
			cfg:  domain.SortConfig{Key: domain.SortByCVE, Direction: domain.SortDesc},
			want: []string{"CVE-2022-7777", "CVE-2021-0002", "CVE-2020-0001", "CVE-2019-1234", "CVE-2018-4444"},
		},
		{
			name: "severity descending",
			cfg:  domain.SortConfig{Key: domain.SortBySeverity, Direction: domain.SortDesc},
			want: []string{"CVE-2019-1234", "CVE-2018-4444", "CVE-2021-0002", "CVE-2022-7777", "CVE-2020-0001"},
		},
		{
			name: "severity ascending",
			cfg:  domain.SortConfig{Key: domain.SortBySeverity, Direction: domain.SortAsc},
			want: []string{"CVE-2020-0001", "CVE-2022-7777", "CVE-2021-0002", "CVE-2018-4444", "CVE-2019-1234"},
		},
		{
			name: "score descending",
			cfg:  domain.SortConfig{Key: domain.SortByScore, Direction: domain.SortDesc},
			want: []string{"CVE-2019-1234", "CVE-2018-4444", "CVE-2021-0002", "CVE-2022-7777", "CVE-2020-0001"},
		},
		{
			name: "score ascending",
			cfg:  domain.SortConfig{Key: domain.SortByScore, Direction: domain.SortAsc},
			want: []string{"CVE-2020-0001", "CVE-2022-7777", "CVE-2021-0002", "CVE-2018-4444", "CVE-2019-1234"},
		},
		{
			name: "affected descending keeps ties in input order",
			cfg:  domain.SortConfig{Key: domain.SortByAffected, Direction: domain.SortDesc},
			want: []string{"CVE-2022-7777", "CVE-2019-1234", "CVE-2020-0001", "CVE-2018-4444", "CVE-2021-0002"},
		},
		{
			name: "unknown key falls back to score",
			cfg:  domain.SortConfig{Key: domain.SortKey("vendor"), Direction: domain.SortDesc},
			want: []string{"CVE-2019-1234", "CVE-2018-4444", "CVE-2021-0002", "CVE-2022-7777", "CVE-2020-0001"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(SortRows(sampleRows(), tt.cfg)))
		})
	}
}

func TestSortRows_AffectedScenario(t *testing.T) {
	rows := []domain.ConsolidatedRow{
		{CVEID: "A", AffectedMachines: machines(1)},
		{CVEID: "B", AffectedMachines: machines(3)},
		{CVEID: "C", AffectedMachines: machines(2)},
	}

	sorted := SortRows(rows, domain.SortConfig{Key: domain.SortByAffected, Direction: domain.SortDesc})

	assert.Equal(t, []string{"B", "C", "A"}, ids(sorted))
}

func TestSortRows_SeverityTiesAreStable(t *testing.T) {
	rows := []domain.ConsolidatedRow{
		{CVEID: "first", CVESeverity: "High"},
		{CVEID: "other", CVESeverity: "low"},
		{CVEID: "second", CVESeverity: "high "},
		{CVEID: "third", CVESeverity: "HIGH"},
	}

	sorted := SortRows(rows, domain.SortConfig{Key: domain.SortBySeverity, Direction: domain.SortDesc})

	assert.Equal(t, []string{"first", "second", "third", "other"}, ids(sorted))
}

func TestSortRows_DoesNotMutateInput(t *testing.T) {
	rows := sampleRows()
	before := ids(rows)

	sorted := SortRows(rows, domain.SortConfig{Key: domain.SortByCVE, Direction: domain.SortAsc})

	assert.Equal(t, before, ids(rows))
	assert.NotEqual(t, before, ids(sorted))
}

func TestSortRows_Empty(t *testing.T) {
	assert.Empty(t, SortRows(nil, domain.DefaultSortConfig()))
}
