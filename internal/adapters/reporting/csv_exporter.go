package reporting

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"
)

// ExportCSV writes the inventory rows as CSV with headers. Affected machines
// are joined with ";".
func ExportCSV(w io.Writer, report *InventoryReport) error {
	writer := csv.NewWriter(w)

	headers := []string{"CVE", "Severity", "Score", "Description", "AffectedCount", "AffectedMachines"}
	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, r := range report.Rows {
		row := []string{
			r.CVEID,
			r.CVESeverity,
			FormatScore(r.CVEScore),
			r.CVEDescription,
			strconv.Itoa(r.AffectedCount()),
			strings.Join(r.AffectedMachines, ";"),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportJSON writes the inventory rows as an indented JSON array
func ExportJSON(w io.Writer, report *InventoryReport) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report.Rows)
}
