package reporting

import (
	"time"

	"github.com/lcalzada-xor/vulnboard/internal/core/domain"
)

// InventoryReport is everything an exporter needs to render the current view.
type InventoryReport struct {
	ID          string
	Title       string
	GeneratedAt time.Time
	Summary     domain.Summary
	Sort        domain.SortConfig
	Rows        []domain.ConsolidatedRow

	// Executive is optional; the PDF adds a risk overview page when set.
	Executive *domain.ExecutiveSummary
}
