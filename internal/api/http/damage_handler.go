package http

import (
	"encoding/json"
	"net/http"

	"gearcheck-backend/internal/domain"
	"gearcheck-backend/internal/service"
)

type DamageHandler struct {
	damage service.DamageService
}

func NewDamageHandler(damage service.DamageService) *DamageHandler {
	return &DamageHandler{damage: damage}
}

type reportDamageRequest struct {
	DamageType          string   `json:"damage_type"`
	Severity            string   `json:"severity"`
	AffectsUsability    bool     `json:"affects_usability"`
	EstimatedRepairCost *float64 `json:"estimated_repair_cost,omitempty"`
}

func (h *DamageHandler) Report(w http.ResponseWriter, r *http.Request) {
	returnID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req reportDamageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("malformed request body"))
		return
	}
	rep := &domain.DamageReport{
		ReturnID:            returnID,
		DamageType:          req.DamageType,
		Severity:            domain.DamageSeverity(req.Severity),
		AffectsUsability:    req.AffectsUsability,
		EstimatedRepairCost: req.EstimatedRepairCost,
	}
	if err := h.damage.ReportDamage(r.Context(), rep, claimsFrom(r).UserID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rep)
}

type reviewDamageRequest struct {
	Status        string  `json:"status"`
	ReviewNote    string  `json:"review_note"`
	PenaltyPoints float64 `json:"penalty_points"`
}

func (h *DamageHandler) Review(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req reviewDamageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("malformed request body"))
		return
	}
	rep, err := h.damage.ReviewDamage(r.Context(), &service.ReviewDamageRequest{
		ReportID:      id,
		NextStatus:    domain.DamageStatus(req.Status),
		ReviewerID:    claimsFrom(r).UserID,
		ReviewNote:    req.ReviewNote,
		PenaltyPoints: req.PenaltyPoints,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (h *DamageHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	rep, err := h.damage.GetDamageReport(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (h *DamageHandler) ListForReturn(w http.ResponseWriter, r *http.Request) {
	returnID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	reports, err := h.damage.ListDamageForReturn(r.Context(), returnID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"damage_reports": reports})
}
