package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"gearcheck-backend/internal/domain"
	"gearcheck-backend/internal/logger"
)

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeError maps domain errors onto HTTP statuses: bad input is 400, a
// missing entity 404, a duplicate operation 409, everything else 500.
func writeError(w http.ResponseWriter, err error) {
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		resp := errorResponse{Error: validation.Msg}
		for _, id := range validation.MissingCriteria {
			resp.Details = append(resp.Details, "missing: "+id)
		}
		for _, v := range validation.InvalidValues {
			resp.Details = append(resp.Details, "invalid: "+v)
		}
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}
	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: notFound.Error()})
		return
	}
	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		writeJSON(w, http.StatusConflict, errorResponse{Error: conflict.Msg})
		return
	}

	logger.Error("Request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}
