package handlers

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/lcalzada-xor/vulnboard/internal/adapters/reporting"
	"github.com/lcalzada-xor/vulnboard/internal/adapters/web/templates"
	"github.com/lcalzada-xor/vulnboard/internal/core/domain"
	"github.com/lcalzada-xor/vulnboard/internal/core/ports"
)

var dashboardTemplate = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"severityLabel": reporting.SeverityLabel,
	"severityClass": severityClass,
	"formatScore":   reporting.FormatScore,
}).Parse(templates.DashboardHTML))

// DashboardHandler renders the HTML dashboard
type DashboardHandler struct {
	Service ports.InventoryService
	Title   string
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(service ports.InventoryService) *DashboardHandler {
	return &DashboardHandler{
		Service: service,
		Title:   "CVE Dashboard",
	}
}

type column struct {
	Key      domain.SortKey
	Label    string
	Active   bool
	Arrow    string
	AriaSort string
	Right    bool
}

type dashboardView struct {
	Title   string
	Summary domain.Summary
	Sort    domain.SortConfig
	Columns []column
	Rows    []domain.ConsolidatedRow
}

// HandleIndex renders the inventory sorted by the session selection
func (h *DashboardHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	cfg := h.Service.SortConfig()
	view := dashboardView{
		Title:   h.Title,
		Summary: h.Service.Summary(),
		Sort:    cfg,
		Columns: columns(cfg),
		Rows:    h.Service.Rows(cfg),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTemplate.Execute(w, view); err != nil {
		slog.Error("Dashboard render failed", "error", err)
		http.Error(w, "Failed to render dashboard", http.StatusInternalServerError)
	}
}

// HandleSortForm applies a column selection from the HTML form and
// redirects back to the dashboard.
func (h *DashboardHandler) HandleSortForm(w http.ResponseWriter, r *http.Request) {
	key, ok := domain.ParseSortKey(r.FormValue("key"))
	if !ok {
		http.Error(w, "Invalid sort key", http.StatusBadRequest)
		return
	}
	h.Service.SelectSort(key)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleRefreshForm triggers a refresh from the HTML form
func (h *DashboardHandler) HandleRefreshForm(w http.ResponseWriter, r *http.Request) {
	h.Service.Refresh(context.WithoutCancel(r.Context()))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func columns(cfg domain.SortConfig) []column {
	cols := make([]column, 0, len(domain.SortKeys))
	for _, key := range domain.SortKeys {
		c := column{Key: key, Label: key.Label(), AriaSort: "none", Right: key == domain.SortByAffected}
		if key == cfg.Key {
			c.Active = true
			if cfg.Direction == domain.SortAsc {
				c.Arrow, c.AriaSort = "▲", "ascending"
			} else {
				c.Arrow, c.AriaSort = "▼", "descending"
			}
		}
		cols = append(cols, c)
	}
	return cols
}

func severityClass(severity string) string {
	switch strings.ToLower(strings.TrimSpace(severity)) {
	case "critical", "high", "medium", "low":
		return "tone-" + strings.ToLower(strings.TrimSpace(severity))
	}
	return "tone-unknown"
}
