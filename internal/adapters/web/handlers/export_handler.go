package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/lcalzada-xor/vulnboard/internal/adapters/reporting"
	"github.com/lcalzada-xor/vulnboard/internal/core/ports"
	reportingService "github.com/lcalzada-xor/vulnboard/internal/core/services/reporting"
)

// ExportHandler handles data export of the current sorted view
type ExportHandler struct {
	Service     ports.InventoryService
	PDFExporter *reporting.PDFExporter
	Executive   *reportingService.ExecutiveReportGenerator
	Title       string
	now         func() time.Time
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(service ports.InventoryService, pdfExporter *reporting.PDFExporter) *ExportHandler {
	return &ExportHandler{
		Service:     service,
		PDFExporter: pdfExporter,
		Executive:   reportingService.NewExecutiveReportGenerator(),
		Title:       "CVE Dashboard",
		now:         time.Now,
	}
}

func (h *ExportHandler) report() *reporting.InventoryReport {
	cfg := h.Service.SortConfig()
	return &reporting.InventoryReport{
		ID:          uuid.NewString(),
		Title:       h.Title,
		GeneratedAt: h.now(),
		Summary:     h.Service.Summary(),
		Sort:        cfg,
		Rows:        h.Service.Rows(cfg),
	}
}

// HandleCSV streams the inventory as CSV
func (h *ExportHandler) HandleCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=cve_inventory.csv")
	if err := reporting.ExportCSV(w, h.report()); err != nil {
		slog.Error("CSV export failed", "error", err)
	}
}

// HandleJSON streams the inventory rows as JSON
func (h *ExportHandler) HandleJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=cve_inventory.json")
	if err := reporting.ExportJSON(w, h.report()); err != nil {
		slog.Error("JSON export failed", "error", err)
	}
}

// HandlePDF renders the inventory as a PDF document
func (h *ExportHandler) HandlePDF(w http.ResponseWriter, r *http.Request) {
	report := h.report()
	report.Executive = h.Executive.Generate(h.Service.Snapshot())
	data, err := h.PDFExporter.Export(report)
	if err != nil {
		slog.Error("PDF export failed", "report_id", report.ID, "error", err)
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=cve_inventory_"+report.GeneratedAt.Format("20060102_150405")+".pdf")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}
