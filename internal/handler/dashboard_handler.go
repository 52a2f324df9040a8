package handler

import (
	"net/http"

	"stocktrack/internal/derive"
	"stocktrack/internal/inventory"
	"stocktrack/internal/model"

	"github.com/rs/zerolog"
)

// CategorySlice is one wedge of the category distribution chart.
type CategorySlice struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CriticalItem is one row of the critical-stock ranking, carrying the
// precomputed styling hints the client renders directly.
type CriticalItem struct {
	Product     model.Product   `json:"product"`
	Severity    derive.Severity `json:"severity"`
	FillPercent float64         `json:"fillPercent"`
}

// DashboardResponse aggregates everything the dashboard shows in one call.
type DashboardResponse struct {
	TotalProducts int             `json:"totalProducts"`
	TotalValue    float64         `json:"totalValue"`
	CategoryCount int             `json:"categoryCount"`
	LowStockCount int             `json:"lowStockCount"`
	Categories    []CategorySlice `json:"categories"`
	CriticalStock []CriticalItem  `json:"criticalStock"`
	HasData       bool            `json:"hasData"`
}

// DashboardHandler serves the aggregate dashboard view.
type DashboardHandler struct {
	inv    *inventory.Inventory
	topN   int
	logger zerolog.Logger
}

// NewDashboardHandler creates a new dashboard handler. topN bounds the
// critical-stock ranking.
func NewDashboardHandler(inv *inventory.Inventory, topN int, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		inv:    inv,
		topN:   topN,
		logger: logger.With().Str("handler", "dashboard").Logger(),
	}
}

// Get handles GET /api/dashboard requests. An empty record set yields zero
// totals and HasData false so the client shows its explicit no-data view
// instead of an empty chart.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	products := h.inv.Products()

	tally := derive.CategoryTally(products)
	slices := make([]CategorySlice, 0, len(tally))
	for _, name := range sortedKeys(tally) {
		slices = append(slices, CategorySlice{Name: name, Count: tally[name]})
	}

	ranked := derive.RankCritical(products, h.topN)
	critical := make([]CriticalItem, 0, len(ranked))
	for _, p := range ranked {
		critical = append(critical, CriticalItem{
			Product:     p,
			Severity:    derive.StockSeverity(p),
			FillPercent: derive.BarFillPercent(p),
		})
	}

	writeJSON(w, http.StatusOK, DashboardResponse{
		TotalProducts: len(products),
		TotalValue:    derive.TotalValue(products),
		CategoryCount: len(tally),
		LowStockCount: len(derive.LowStock(products)),
		Categories:    slices,
		CriticalStock: critical,
		HasData:       len(products) > 0,
	})
}
