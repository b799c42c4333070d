package http

import (
	"encoding/json"
	"net/http"

	"gearcheck-backend/internal/domain"
	"gearcheck-backend/internal/logger"
	"gearcheck-backend/internal/security"
)

type AuthHandler struct {
	tm security.TokenManager
}

func NewAuthHandler(tm security.TokenManager) *AuthHandler {
	return &AuthHandler{tm: tm}
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// Refresh exchanges a valid refresh token for a new token pair. The refresh
// token is rotated on every exchange. Access tokens are rejected here the
// same way refresh tokens are rejected by the bearer middleware.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		writeError(w, domain.NewValidationError("malformed request body"))
		return
	}
	claims, err := h.tm.ValidateToken(req.RefreshToken)
	if err != nil || claims.Type != security.TokenTypeRefresh {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid or expired refresh token"})
		return
	}

	access, err := h.tm.GenerateAccessToken(claims.UserID, claims.Name, claims.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	refresh, err := h.tm.GenerateRefreshToken(claims.UserID, claims.Name, claims.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	logger.Info("Access token refreshed", "user_id", claims.UserID)
	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
	})
}
