package http

import (
	"net/http"

	"gearcheck-backend/internal/domain"
	"gearcheck-backend/internal/security"
	"gearcheck-backend/internal/service"

	"github.com/gorilla/mux"
)

// Services bundles everything the router exposes.
type Services struct {
	Templates   service.TemplateService
	Returns     service.ReturnService
	Assessments service.AssessmentService
	Damage      service.DamageService
	Reputation  service.ReputationService
	Analytics   service.AnalyticsService
}

// NewRouter wires all handlers under /api/v1 behind token authentication and
// the role capability table. Only the health probe and the token refresh
// exchange are open.
func NewRouter(svcs Services, tm security.TokenManager) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	// The refresh exchange authenticates with the refresh token itself, so
	// it sits outside the bearer middleware.
	auth := NewAuthHandler(tm)
	router.HandleFunc("/api/v1/auth/refresh", auth.Refresh).Methods("POST")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(Authenticate(tm))

	templates := NewTemplateHandler(svcs.Templates)
	api.HandleFunc("/templates", requireCapability(domain.CapManageTemplates, templates.Create)).Methods("POST")
	api.HandleFunc("/templates", requireCapability(domain.CapSubmitAssessment, templates.List)).Methods("GET")
	api.HandleFunc("/templates/{id}", requireCapability(domain.CapSubmitAssessment, templates.Get)).Methods("GET")
	api.HandleFunc("/templates/{id}", requireCapability(domain.CapManageTemplates, templates.Update)).Methods("PUT")

	returns := NewReturnHandler(svcs.Returns)
	api.HandleFunc("/returns", requireCapability(domain.CapRecordReturns, returns.Record)).Methods("POST")
	api.HandleFunc("/returns/{id}", requireCapability(domain.CapQueryAssessments, returns.Get)).Methods("GET")

	assessments := NewAssessmentHandler(svcs.Assessments)
	api.HandleFunc("/returns/{id}/assessment", requireCapability(domain.CapSubmitAssessment, assessments.Submit)).Methods("POST")
	api.HandleFunc("/returns/{id}/assessment", requireCapability(domain.CapQueryAssessments, assessments.GetForReturn)).Methods("GET")
	api.HandleFunc("/assessments", requireCapability(domain.CapQueryAssessments, assessments.Query)).Methods("GET")
	api.HandleFunc("/assessments/{id}", requireCapability(domain.CapQueryAssessments, assessments.Get)).Methods("GET")

	damage := NewDamageHandler(svcs.Damage)
	api.HandleFunc("/returns/{id}/damage", requireCapability(domain.CapRecordReturns, damage.Report)).Methods("POST")
	api.HandleFunc("/returns/{id}/damage", requireCapability(domain.CapQueryAssessments, damage.ListForReturn)).Methods("GET")
	api.HandleFunc("/damage/{id}", requireCapability(domain.CapQueryAssessments, damage.Get)).Methods("GET")
	api.HandleFunc("/damage/{id}/review", requireCapability(domain.CapReviewDamage, damage.Review)).Methods("POST")

	reputation := NewReputationHandler(svcs.Reputation)
	api.HandleFunc("/users/{id}/reputation", requireCapability(domain.CapViewReputation, reputation.GetScore)).Methods("GET")
	api.HandleFunc("/users/{id}/reputation/history", requireCapability(domain.CapViewReputation, reputation.GetHistory)).Methods("GET")

	analyticsHandler := NewAnalyticsHandler(svcs.Analytics)
	api.HandleFunc("/analytics/conditions", requireCapability(domain.CapViewAnalytics, analyticsHandler.Conditions)).Methods("GET")
	api.HandleFunc("/analytics/overdue", requireCapability(domain.CapViewAnalytics, analyticsHandler.Overdue)).Methods("GET")

	return router
}
