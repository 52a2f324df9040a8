package handler

import (
	"encoding/json"
	"net/http"

	"stocktrack/internal/category"
	"stocktrack/internal/model"

	"github.com/rs/zerolog"
)

// CategoryListResponse returns the registered categories plus the active
// filter selection.
type CategoryListResponse struct {
	Categories []string `json:"categories"`
	Active     string   `json:"active"`
}

// addCategoryRequest is the payload for registering a new category.
type addCategoryRequest struct {
	Name string `json:"name"`
}

// CategoryHandler handles category-registry HTTP requests.
type CategoryHandler struct {
	registry *category.Registry
	logger   zerolog.Logger
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(registry *category.Registry, logger zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{
		registry: registry,
		logger:   logger.With().Str("handler", "category").Logger(),
	}
}

// List handles GET /api/categories requests.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CategoryListResponse{
		Categories: h.registry.List(),
		Active:     h.registry.Active(),
	})
}

// Add handles POST /api/categories requests. Adding an existing name does
// not duplicate it but still selects it as the active filter.
func (h *CategoryHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if !h.registry.Add(req.Name) {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "category name is required", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, CategoryListResponse{
		Categories: h.registry.List(),
		Active:     h.registry.Active(),
	})
}
