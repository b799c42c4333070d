package http

import (
	"net/http"

	"gearcheck-backend/internal/analytics"
	"gearcheck-backend/internal/service"
)

type AnalyticsHandler struct {
	analytics service.AnalyticsService
}

func NewAnalyticsHandler(svc service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: svc}
}

func (h *AnalyticsHandler) Conditions(w http.ResponseWriter, r *http.Request) {
	filter, err := assessmentFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}
	g, err := analytics.ParseGranularity(r.URL.Query().Get("granularity"))
	if err != nil {
		writeError(w, err)
		return
	}
	report, err := h.analytics.ConditionReport(r.Context(), filter, g)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *AnalyticsHandler) Overdue(w http.ResponseWriter, r *http.Request) {
	report, err := h.analytics.OverdueReport(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
