package handler

import (
	"encoding/json"
	"net/http"

	"stocktrack/internal/category"
	"stocktrack/internal/derive"
	"stocktrack/internal/inventory"
	"stocktrack/internal/model"

	"github.com/rs/zerolog"
)

// List states distinguish an empty catalogue from a filter that matched
// nothing, so the client can render the right empty view.
const (
	ListStateOK        = "ok"
	ListStateEmpty     = "empty"
	ListStateNoResults = "no_results"
)

// ProductListResponse is the payload for the products listing.
type ProductListResponse struct {
	Products []model.Product `json:"products"`
	State    string          `json:"state"`
	Total    int             `json:"total"`
}

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	inv      *inventory.Inventory
	registry *category.Registry
	logger   zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(inv *inventory.Inventory, registry *category.Registry, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		inv:      inv,
		registry: registry,
		logger:   logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products requests with optional search and category
// filters. Filtering happens entirely in memory; the store is never queried.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	term := r.URL.Query().Get("search")
	cat := r.URL.Query().Get("category")

	all := h.inv.Products()
	filtered := derive.Filter(all, term, cat)

	state := ListStateOK
	if len(all) == 0 {
		state = ListStateEmpty
	} else if len(filtered) == 0 {
		state = ListStateNoResults
	}

	if filtered == nil {
		filtered = []model.Product{}
	}

	writeJSON(w, http.StatusOK, ProductListResponse{
		Products: filtered,
		State:    state,
		Total:    len(all),
	})
}

// LowStock handles GET /api/products/low-stock requests. Dismissal of the
// low-stock banner is client-side state; this endpoint always reports the
// current subset.
func (h *ProductHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	low := h.inv.LowStock()
	if low == nil {
		low = []model.Product{}
	}
	writeJSON(w, http.StatusOK, low)
}

// GetByID handles GET /api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request, id string) {
	product, found := h.inv.Find(id)
	if !found {
		writeError(w, http.StatusNotFound, model.ErrCodeProductNotFound, "product not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Create handles POST /api/products requests.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.rejectWhenBusy(w) {
		return
	}

	var input model.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	product, err := h.inv.Add(r.Context(), input)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	h.registry.MergeProducts([]model.Product{*product})
	writeJSON(w, http.StatusCreated, product)
}

// Update handles PUT /api/products/{id} requests.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request, id string) {
	if h.rejectWhenBusy(w) {
		return
	}

	var input model.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	product, err := h.inv.Update(r.Context(), id, input)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	h.registry.MergeProducts([]model.Product{*product})
	writeJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/products/{id} requests.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	if h.rejectWhenBusy(w) {
		return
	}

	if err := h.inv.Remove(r.Context(), id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// rejectWhenBusy mirrors the disabled submit button in the client: while a
// store call is outstanding, further mutations are turned away rather than
// queued. The check is advisory; the data layer does not enforce it.
func (h *ProductHandler) rejectWhenBusy(w http.ResponseWriter) bool {
	if !h.inv.Busy() {
		return false
	}
	writeError(w, http.StatusConflict, model.ErrCodeBusy, model.ErrBusy.Message, h.logger)
	return true
}
