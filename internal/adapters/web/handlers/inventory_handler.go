package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/lcalzada-xor/vulnboard/internal/core/domain"
	"github.com/lcalzada-xor/vulnboard/internal/core/ports"
)

// InventoryHandler serves the consolidated CVE inventory
type InventoryHandler struct {
	Service ports.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(service ports.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		Service: service,
	}
}

// InventoryResponse is the body of the inventory listing and sort endpoints.
type InventoryResponse struct {
	Summary domain.Summary           `json:"summary"`
	Sort    domain.SortConfig        `json:"sort"`
	Rows    []domain.ConsolidatedRow `json:"rows"`
	Error   string                   `json:"error,omitempty"`
	Loading bool                     `json:"loading"`
}

type sortRequest struct {
	Key string `json:"key"`
}

// HandleList returns the current rows. An explicit sort and dir query
// overrides the session selection for this response only.
func (h *InventoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	cfg := h.Service.SortConfig()

	q := r.URL.Query()
	if raw := q.Get("sort"); raw != "" {
		key, ok := domain.ParseSortKey(raw)
		if !ok {
			http.Error(w, "Invalid sort key", http.StatusBadRequest)
			return
		}
		cfg = domain.SortConfig{Key: key, Direction: domain.SortDesc}
	}
	if raw := q.Get("dir"); raw != "" {
		dir, ok := domain.ParseSortDirection(raw)
		if !ok {
			http.Error(w, "Invalid sort direction", http.StatusBadRequest)
			return
		}
		cfg.Direction = dir
	}

	writeJSON(w, http.StatusOK, h.response(cfg))
}

// HandleGet returns a single row for the drill-down view
func (h *InventoryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	cveID := mux.Vars(r)["cveId"]

	row, ok := h.Service.Row(cveID)
	if !ok {
		http.Error(w, "CVE not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

// HandleSort applies a column selection: the active column flips
// direction, any other column becomes active in descending order.
func (h *InventoryHandler) HandleSort(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 4096)

	var req sortRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	key, ok := domain.ParseSortKey(req.Key)
	if !ok {
		http.Error(w, "Invalid sort key", http.StatusBadRequest)
		return
	}

	cfg := h.Service.SelectSort(key)
	writeJSON(w, http.StatusOK, h.response(cfg))
}

// HandleRefresh re-fetches both feeds and returns the resulting summary.
// Feed failures are reported in the body; the request itself succeeds.
// The refresh outlives the request: a client going away must not cancel the
// fetches and empty the shared snapshot.
func (h *InventoryHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	snap := h.Service.Refresh(context.WithoutCancel(r.Context()))
	if err := snap.Err(); err != nil {
		slog.Warn("Refresh completed with feed errors", "refresh_id", snap.RefreshID, "error", err)
	}
	writeJSON(w, http.StatusOK, h.Service.Summary())
}

// HandleSummary returns the dashboard header figures
func (h *InventoryHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.Summary())
}

func (h *InventoryHandler) response(cfg domain.SortConfig) InventoryResponse {
	summary := h.Service.Summary()
	return InventoryResponse{
		Summary: summary,
		Sort:    cfg,
		Rows:    h.Service.Rows(cfg),
		Error:   summary.Error,
		Loading: summary.Loading,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("JSON encode failed", "error", err)
	}
}
