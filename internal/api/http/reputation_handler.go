package http

import (
	"net/http"

	"gearcheck-backend/internal/service"
)

type ReputationHandler struct {
	reputation service.ReputationService
}

func NewReputationHandler(reputation service.ReputationService) *ReputationHandler {
	return &ReputationHandler{reputation: reputation}
}

func (h *ReputationHandler) GetScore(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	score, err := h.reputation.GetScore(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user_id": userID, "trust_score": score})
}

func (h *ReputationHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := queryPage(r)
	if err != nil {
		writeError(w, err)
		return
	}
	entries, total, err := h.reputation.GetHistory(r.Context(), userID, page)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"entries":   entries,
		"total":     total,
		"page":      page.Number,
		"page_size": page.Size,
	})
}
