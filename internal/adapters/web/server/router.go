package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/lcalzada-xor/vulnboard/internal/adapters/web/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(s *Server) http.Handler {
	r := mux.NewRouter()
	limitRefresh := middleware.RateLimitMiddleware(s.refreshLimiter)

	// HTML dashboard
	r.HandleFunc("/", s.DashboardHandler.HandleIndex).Methods(http.MethodGet)
	r.HandleFunc("/sort", s.DashboardHandler.HandleSortForm).Methods(http.MethodPost)
	r.Handle("/refresh", limitRefresh(http.HandlerFunc(s.DashboardHandler.HandleRefreshForm))).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/inventory", s.InventoryHandler.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/inventory/sort", s.InventoryHandler.HandleSort).Methods(http.MethodPost)
	api.HandleFunc("/inventory/{cveId}", s.InventoryHandler.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/summary", s.InventoryHandler.HandleSummary).Methods(http.MethodGet)
	api.HandleFunc("/risk", s.RiskHandler.HandleRisk).Methods(http.MethodGet)
	api.Handle("/refresh", limitRefresh(http.HandlerFunc(s.InventoryHandler.HandleRefresh))).Methods(http.MethodPost)

	api.HandleFunc("/export/csv", s.ExportHandler.HandleCSV).Methods(http.MethodGet)
	api.HandleFunc("/export/json", s.ExportHandler.HandleJSON).Methods(http.MethodGet)
	api.HandleFunc("/export/pdf", s.ExportHandler.HandlePDF).Methods(http.MethodGet)

	r.HandleFunc("/ws", s.WSManager.HandleWebSocket)
	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	return r
}
