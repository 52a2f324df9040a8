package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	"stocktrack/internal/model"
	"stocktrack/internal/store"

	"github.com/rs/zerolog"
)

// validationResponse carries per-field errors so the client can annotate the
// whole form in one round trip.
type validationResponse struct {
	Error  string             `json:"error"`
	Fields []model.FieldError `json:"fields"`
}

// writeJSON writes a JSON response with the given status code. Encode
// failures after the header is written cannot be reported to the client.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeDomainError translates a container or store failure into the
// appropriate HTTP response. Validation failures become 400s with field
// detail; vanished records become 404s; everything else from the store is a
// 502, since the remote collection, not this service, is at fault.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var validationErrs model.ValidationErrors
	if errors.As(err, &validationErrs) {
		logger.Debug().Str("error", validationErrs.Error()).Msg("validation failed")
		writeJSON(w, http.StatusBadRequest, validationResponse{
			Error:  model.ErrCodeValidation,
			Fields: validationErrs,
		})
		return
	}

	var notFound *store.NotFoundError
	if errors.As(err, &notFound) {
		writeError(w, http.StatusNotFound, model.ErrCodeProductNotFound, notFound.Error(), logger)
		return
	}

	var connectivity *store.ConnectivityError
	if errors.As(err, &connectivity) {
		writeError(w, http.StatusBadGateway, model.ErrCodeConnectivity, "product store is unreachable", logger)
		return
	}

	var write *store.WriteError
	if errors.As(err, &write) {
		writeError(w, http.StatusBadGateway, model.ErrCodeStoreWrite, "product store rejected the operation", logger)
		return
	}

	writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
}

// sortedKeys returns map keys in sorted order for stable JSON payloads.
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
