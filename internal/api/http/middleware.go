package http

import (
	"context"
	"net/http"
	"strings"

	"gearcheck-backend/internal/domain"
	"gearcheck-backend/internal/logger"
	"gearcheck-backend/internal/security"

	"github.com/gorilla/mux"
)

type contextKey string

const claimsKey contextKey = "staff_claims"

// Authenticate validates the bearer token and stores the staff claims on the
// request context. Refresh tokens are rejected here; only access tokens reach
// handlers.
func Authenticate(tm security.TokenManager) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
				return
			}
			claims, err := tm.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil || claims.Type != security.TokenTypeAccess {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid or expired token"})
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
		})
	}
}

func claimsFrom(r *http.Request) *security.StaffClaims {
	claims, _ := r.Context().Value(claimsKey).(*security.StaffClaims)
	return claims
}

// requireCapability gates a handler on the role capability table.
func requireCapability(capability domain.Capability, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r)
		if claims == nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
			return
		}
		if !domain.RoleAllowed(claims.Role, capability) {
			logger.Warn("Capability denied",
				"user_id", claims.UserID, "role", string(claims.Role), "capability", string(capability))
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "insufficient permissions"})
			return
		}
		next(w, r)
	}
}
