package http

import (
	"encoding/json"
	"net/http"

	"gearcheck-backend/internal/domain"
	"gearcheck-backend/internal/service"
)

type TemplateHandler struct {
	templates service.TemplateService
}

func NewTemplateHandler(templates service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

type templateRequest struct {
	Name       string                     `json:"name"`
	Category   string                     `json:"category"`
	Criteria   []domain.Criterion         `json:"criteria"`
	Thresholds domain.ConditionThresholds `json:"condition_thresholds"`
}

func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("malformed request body"))
		return
	}
	tpl := &domain.AssessmentTemplate{
		Name:       req.Name,
		Category:   req.Category,
		Criteria:   req.Criteria,
		Thresholds: req.Thresholds,
		CreatedBy:  claimsFrom(r).UserID,
	}
	if err := h.templates.CreateTemplate(r.Context(), tpl); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tpl)
}

func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req templateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("malformed request body"))
		return
	}
	tpl := &domain.AssessmentTemplate{
		Name:       req.Name,
		Category:   req.Category,
		Criteria:   req.Criteria,
		Thresholds: req.Thresholds,
		CreatedBy:  claimsFrom(r).UserID,
	}
	updated, err := h.templates.UpdateTemplate(r.Context(), id, tpl)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	tpl, err := h.templates.GetTemplate(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tpl)
}

func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templates.ListTemplates(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"templates": templates})
}
