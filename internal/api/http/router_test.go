package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gearcheck-backend/internal/domain"
	"gearcheck-backend/internal/security"
	"gearcheck-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockReturnService struct {
	mock.Mock
}

func (m *mockReturnService) RecordReturn(ctx context.Context, req *service.RecordReturnRequest) (*domain.ReturnEvent, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReturnEvent), args.Error(1)
}
func (m *mockReturnService) GetReturn(ctx context.Context, id int32) (*domain.ReturnEvent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReturnEvent), args.Error(1)
}

func testToken(t *testing.T, tm security.TokenManager, role domain.Role) string {
	t.Helper()
	token, err := tm.GenerateAccessToken(2, "casey", role)
	if err != nil {
		t.Fatalf("error generating token: %v", err)
	}
	return token
}

func TestRouterAuthorization(t *testing.T) {
	tm := security.NewTokenManager("test-secret", time.Hour)
	returns := new(mockReturnService)
	router := NewRouter(Services{Returns: returns}, tm)

	body := func() *bytes.Buffer {
		b, _ := json.Marshal(map[string]any{
			"reservation_id":      7,
			"condition_on_return": "GOOD",
		})
		return bytes.NewBuffer(b)
	}

	t.Run("Missing token", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/returns", body())
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Capability denied", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/analytics/overdue", nil)
		req.Header.Set("Authorization", "Bearer "+testToken(t, tm, domain.RoleStaff))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Staff records a return", func(t *testing.T) {
		returns.On("RecordReturn", mock.Anything, mock.MatchedBy(func(r *service.RecordReturnRequest) bool {
			return r.ReservationID == 7 && r.RecordedBy == 2
		})).Return(&domain.ReturnEvent{ID: 12, ReservationID: 7}, nil).Once()

		req := httptest.NewRequest("POST", "/api/v1/returns", body())
		req.Header.Set("Authorization", "Bearer "+testToken(t, tm, domain.RoleStaff))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)
		returns.AssertExpectations(t)
	})
}

func TestRouterTokenRefresh(t *testing.T) {
	tm := security.NewTokenManager("test-secret", time.Hour)
	router := NewRouter(Services{}, tm)

	refresh := func(token string) *httptest.ResponseRecorder {
		b, _ := json.Marshal(map[string]string{"refresh_token": token})
		req := httptest.NewRequest("POST", "/api/v1/auth/refresh", bytes.NewBuffer(b))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("Refresh token yields a usable access token", func(t *testing.T) {
		token, err := tm.GenerateRefreshToken(2, "casey", domain.RoleManager)
		assert.NoError(t, err)

		rec := refresh(token)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.RefreshToken, "refresh token is rotated")

		claims, err := tm.ValidateToken(resp.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, security.TokenTypeAccess, claims.Type)
		assert.Equal(t, int32(2), claims.UserID)
		assert.Equal(t, domain.RoleManager, claims.Role)
	})

	t.Run("Access token is rejected", func(t *testing.T) {
		rec := refresh(testToken(t, tm, domain.RoleManager))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Garbage token is rejected", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, refresh("not-a-token").Code)
	})
}

func TestRouterErrorMapping(t *testing.T) {
	tm := security.NewTokenManager("test-secret", time.Hour)
	returns := new(mockReturnService)
	router := NewRouter(Services{Returns: returns}, tm)
	token := testToken(t, tm, domain.RoleManager)

	do := func(err error) *httptest.ResponseRecorder {
		returns.On("GetReturn", mock.Anything, int32(12)).Return(nil, err).Once()
		req := httptest.NewRequest("GET", "/api/v1/returns/12", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusNotFound, do(domain.NewNotFoundError("return", 12)).Code)
	assert.Equal(t, http.StatusConflict, do(domain.NewConflictError("duplicate")).Code)
	assert.Equal(t, http.StatusBadRequest, do(domain.NewValidationError("bad input")).Code)
	assert.Equal(t, http.StatusInternalServerError, do(assert.AnError).Code)
}
