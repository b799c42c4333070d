package http

import (
	"encoding/json"
	"net/http"
	"time"

	"gearcheck-backend/internal/domain"
	"gearcheck-backend/internal/service"
)

type ReturnHandler struct {
	returns service.ReturnService
}

func NewReturnHandler(returns service.ReturnService) *ReturnHandler {
	return &ReturnHandler{returns: returns}
}

type recordReturnRequest struct {
	ReservationID     int32     `json:"reservation_id"`
	ReturnDate        time.Time `json:"return_date"`
	ConditionOnReturn string    `json:"condition_on_return"`
}

func (h *ReturnHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req recordReturnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("malformed request body"))
		return
	}
	ret, err := h.returns.RecordReturn(r.Context(), &service.RecordReturnRequest{
		ReservationID:     req.ReservationID,
		ReturnDate:        req.ReturnDate,
		ConditionOnReturn: domain.ConditionGrade(req.ConditionOnReturn),
		RecordedBy:        claimsFrom(r).UserID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ret)
}

func (h *ReturnHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	ret, err := h.returns.GetReturn(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ret)
}
