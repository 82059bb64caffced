package reporting

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/lcalzada-xor/vulnboard/internal/core/domain"
)

// PDFExporter exports the inventory view to PDF format
type PDFExporter struct{}

// NewPDFExporter creates a new PDF exporter instance
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Export renders the report as a landscape A4 document.
func (e *PDFExporter) Export(report *InventoryReport) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	e.addHeader(pdf, report)
	e.addSummary(pdf, report)
	e.addInventory(pdf, report, tr)
	if report.Executive != nil {
		pdf.AddPage()
		e.addRiskOverview(pdf, report.Executive)
		e.addRecommendations(pdf, report.Executive, tr)
	}
	e.addFooter(pdf, report)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// addHeader adds the report header
func (e *PDFExporter) addHeader(pdf *gofpdf.Fpdf, report *InventoryReport) {
	pdf.SetFont("Arial", "B", 22)
	pdf.SetTextColor(15, 23, 42)
	pdf.CellFormat(0, 12, report.Title, "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(100, 116, 139)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", report.GeneratedAt.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Sorted by %s (%s)", report.Sort.Key.Label(), report.Sort.Direction), "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

// addSummary adds the two dashboard cards
func (e *PDFExporter) addSummary(pdf *gofpdf.Fpdf, report *InventoryReport) {
	cards := []struct {
		label string
		value string
	}{
		{"Total CVEs", fmt.Sprintf("%d", report.Summary.TotalCVEs)},
		{"Devices Scanned", fmt.Sprintf("%d", report.Summary.DevicesScanned)},
	}

	y := pdf.GetY()
	for i, c := range cards {
		x := 15.0 + float64(i)*95
		pdf.SetFillColor(241, 245, 249)
		pdf.Rect(x, y, 90, 22, "F")

		pdf.SetXY(x+4, y+3)
		pdf.SetFont("Arial", "B", 9)
		pdf.SetTextColor(71, 85, 105)
		pdf.CellFormat(80, 5, strings.ToUpper(c.label), "", 2, "L", false, 0, "")

		pdf.SetFont("Arial", "B", 18)
		pdf.SetTextColor(15, 23, 42)
		pdf.CellFormat(80, 10, c.value, "", 0, "L", false, 0, "")
	}
	pdf.SetY(y + 28)

	if report.Summary.Error != "" {
		pdf.SetFont("Arial", "B", 10)
		pdf.SetTextColor(220, 38, 38)
		pdf.CellFormat(0, 6, "Data error", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(0, 5, report.Summary.Error, "", "L", false)
		pdf.Ln(3)
	}
}

// addInventory adds the CVE inventory table
func (e *PDFExporter) addInventory(pdf *gofpdf.Fpdf, report *InventoryReport, tr func(string) string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(15, 23, 42)
	pdf.CellFormat(0, 10, "CVE inventory", "", 1, "L", false, 0, "")

	if len(report.Rows) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 7, "No CVE data available.", "", 1, "L", false, 0, "")
		return
	}

	widths := []float64{40, 25, 18, 150, 34}
	headers := []string{"CVE", "Severity", "Score", "Description", "Affected Devices"}

	pdf.SetFillColor(226, 232, 240)
	pdf.SetFont("Arial", "B", 9)
	pdf.SetTextColor(51, 65, 85)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, row := range report.Rows {
		r, g, b := severityColor(row.CVESeverity)

		pdf.SetTextColor(15, 23, 42)
		pdf.CellFormat(widths[0], 7, row.CVEID, "1", 0, "L", false, 0, "")
		pdf.SetTextColor(r, g, b)
		pdf.CellFormat(widths[1], 7, SeverityLabel(row.CVESeverity), "1", 0, "L", false, 0, "")
		pdf.SetTextColor(15, 23, 42)
		pdf.CellFormat(widths[2], 7, FormatScore(row.CVEScore), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, tr(truncate(row.CVEDescription, 110)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[4], 7, fmt.Sprintf("%d", row.AffectedCount()), "1", 1, "R", false, 0, "")
	}
}

// addRiskOverview adds the overall risk score, the severity breakdown and
// the top risks table
func (e *PDFExporter) addRiskOverview(pdf *gofpdf.Fpdf, exec *domain.ExecutiveSummary) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(15, 23, 42)
	pdf.CellFormat(0, 10, "Risk overview", "", 1, "L", false, 0, "")

	r, g, b := riskLevelColor(exec.RiskLevel)
	pdf.SetFont("Arial", "B", 28)
	pdf.SetTextColor(r, g, b)
	pdf.CellFormat(40, 14, fmt.Sprintf("%.1f", exec.RiskScore), "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 14, fmt.Sprintf("%s risk across %d devices", exec.RiskLevel, exec.TotalDevices), "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(51, 65, 85)
	s := exec.Stats
	pdf.CellFormat(0, 6, fmt.Sprintf("Critical: %d   High: %d   Medium: %d   Low: %d   Unknown: %d   Exposures: %d",
		s.Critical, s.High, s.Medium, s.Low, s.Unknown, s.Exposures), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if len(exec.TopRisks) == 0 {
		return
	}

	widths := []float64{12, 40, 25, 18, 25, 25, 122}
	headers := []string{"#", "CVE", "Severity", "Score", "Devices", "Risk", "Likelihood"}
	pdf.SetFillColor(226, 232, 240)
	pdf.SetFont("Arial", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, risk := range exec.TopRisks {
		r, g, b := severityColor(risk.Severity)
		pdf.SetTextColor(15, 23, 42)
		pdf.CellFormat(widths[0], 7, fmt.Sprintf("%d", risk.Rank), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 7, risk.CVEID, "1", 0, "L", false, 0, "")
		pdf.SetTextColor(r, g, b)
		pdf.CellFormat(widths[2], 7, SeverityLabel(risk.Severity), "1", 0, "L", false, 0, "")
		pdf.SetTextColor(15, 23, 42)
		pdf.CellFormat(widths[3], 7, FormatScore(risk.Score), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 7, fmt.Sprintf("%d", risk.AffectedDevices), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 7, fmt.Sprintf("%.1f", risk.RiskScore), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[6], 7, risk.Likelihood, "1", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

// addRecommendations adds the prioritized remediation list
func (e *PDFExporter) addRecommendations(pdf *gofpdf.Fpdf, exec *domain.ExecutiveSummary, tr func(string) string) {
	if len(exec.Recommendations) == 0 {
		return
	}

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(15, 23, 42)
	pdf.CellFormat(0, 10, "Recommendations", "", 1, "L", false, 0, "")

	for i, rec := range exec.Recommendations {
		r, g, b := severityColor(rec.Priority)
		pdf.SetFont("Arial", "B", 11)
		pdf.SetTextColor(r, g, b)
		pdf.CellFormat(0, 7, fmt.Sprintf("%d. [%s] %s", i+1, strings.ToUpper(rec.Priority), tr(rec.Title)), "", 1, "L", false, 0, "")

		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(51, 65, 85)
		pdf.MultiCell(0, 5, tr(fmt.Sprintf("%s Removes %.0f%% of exposures.", rec.Description, rec.ImpactReduction)), "", "L", false)
		for _, action := range rec.Actions {
			pdf.CellFormat(6, 5, "", "", 0, "L", false, 0, "")
			pdf.MultiCell(0, 5, tr("- "+action), "", "L", false)
		}
		pdf.Ln(2)
	}
}

// addFooter adds the report footer
func (e *PDFExporter) addFooter(pdf *gofpdf.Fpdf, report *InventoryReport) {
	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	id := report.ID
	if len(id) > 8 {
		id = id[:8]
	}
	pdf.CellFormat(0, 5, fmt.Sprintf("Generated by vulnboard | Report ID: %s", id), "", 1, "C", false, 0, "")
}

func severityColor(label string) (r, g, b int) {
	switch domain.SeverityRank(label) {
	case 4:
		return 185, 28, 28
	case 3:
		return 194, 65, 12
	case 2:
		return 180, 83, 9
	case 1:
		return 4, 120, 87
	default:
		return 71, 85, 105
	}
}

func riskLevelColor(level string) (r, g, b int) {
	switch level {
	case "Critical":
		return 185, 28, 28
	case "High":
		return 194, 65, 12
	case "Medium":
		return 180, 83, 9
	default:
		return 4, 120, 87
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
