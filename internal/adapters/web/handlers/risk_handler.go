package handlers

import (
	"net/http"

	"github.com/lcalzada-xor/vulnboard/internal/core/ports"
	reportingService "github.com/lcalzada-xor/vulnboard/internal/core/services/reporting"
)

// RiskHandler serves the executive risk summary of the current snapshot.
type RiskHandler struct {
	Service   ports.InventoryService
	Generator *reportingService.ExecutiveReportGenerator
}

func NewRiskHandler(service ports.InventoryService) *RiskHandler {
	return &RiskHandler{
		Service:   service,
		Generator: reportingService.NewExecutiveReportGenerator(),
	}
}

// HandleRisk returns the risk score, top risks and remediation list.
func (h *RiskHandler) HandleRisk(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Generator.Generate(h.Service.Snapshot()))
}
