package http

import (
	"encoding/json"
	"net/http"

	"gearcheck-backend/internal/analytics"
	"gearcheck-backend/internal/domain"
	"gearcheck-backend/internal/service"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AssessmentHandler struct {
	assessments service.AssessmentService
}

func NewAssessmentHandler(assessments service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessments: assessments}
}

type submitAssessmentRequest struct {
	TemplateID int32                       `json:"template_id"`
	Responses  []domain.AssessmentResponse `json:"responses"`
	Overrides  domain.AssessmentOverrides  `json:"overrides"`
}

func (h *AssessmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	returnID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req submitAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("malformed request body"))
		return
	}
	rec, err := h.assessments.SubmitAssessment(r.Context(), &service.SubmitAssessmentRequest{
		ReturnID:   returnID,
		TemplateID: req.TemplateID,
		Responses:  req.Responses,
		Overrides:  req.Overrides,
		AssessedBy: claimsFrom(r).UserID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *AssessmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, domain.NewValidationError("invalid assessment id"))
		return
	}
	rec, err := h.assessments.GetAssessment(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *AssessmentHandler) GetForReturn(w http.ResponseWriter, r *http.Request) {
	returnID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	rec, err := h.assessments.GetAssessmentForReturn(r.Context(), returnID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Query lists assessment records matching the filter. With include_report the
// response also carries the analytics block computed over the whole filtered
// history, not just the returned page.
func (h *AssessmentHandler) Query(w http.ResponseWriter, r *http.Request) {
	filter, err := assessmentFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := queryPage(r)
	if err != nil {
		writeError(w, err)
		return
	}
	g, err := analytics.ParseGranularity(r.URL.Query().Get("granularity"))
	if err != nil {
		writeError(w, err)
		return
	}
	withReport := r.URL.Query().Get("include_report") == "true"

	records, total, report, err := h.assessments.QueryAssessments(r.Context(), filter, page, g, withReport)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := map[string]any{
		"assessments": records,
		"total":       total,
		"page":        page.Number,
		"page_size":   page.Size,
	}
	if report != nil {
		resp["report"] = report
	}
	writeJSON(w, http.StatusOK, resp)
}

func assessmentFilter(r *http.Request) (domain.AssessmentFilter, error) {
	var filter domain.AssessmentFilter
	var err error
	if filter.ReturnID, err = queryInt32(r, "return_id"); err != nil {
		return filter, err
	}
	if filter.ItemID, err = queryInt32(r, "item_id"); err != nil {
		return filter, err
	}
	if filter.UserID, err = queryInt32(r, "user_id"); err != nil {
		return filter, err
	}
	if filter.TemplateID, err = queryInt32(r, "template_id"); err != nil {
		return filter, err
	}
	if cond := r.URL.Query().Get("condition"); cond != "" {
		grade := domain.ConditionGrade(cond)
		if !grade.Valid() {
			return filter, domain.NewValidationError("unknown condition grade %q", cond)
		}
		filter.Condition = grade
	}
	if filter.From, err = queryTime(r, "from"); err != nil {
		return filter, err
	}
	if filter.To, err = queryTime(r, "to"); err != nil {
		return filter, err
	}
	return filter, nil
}
