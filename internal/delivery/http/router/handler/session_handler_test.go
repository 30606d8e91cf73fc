package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"rater/internal/domain/entity"
	"rater/internal/domain/service"
	"rater/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSessionUsecase resolves every token to a fixed resolution and records
// the token it was handed.
type stubSessionUsecase struct {
	resolution *usecase.SessionResolution
	gotToken   string
}

func (s *stubSessionUsecase) Resolve(_ context.Context, accessToken string) (*usecase.SessionResolution, error) {
	s.gotToken = accessToken

	return s.resolution, nil
}

func (s *stubSessionUsecase) Subscribe(_ func(event *service.AuthEvent)) func() {
	return func() {}
}

func newSessionContext(t *testing.T, target string, bearer string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestSessionHandler_Resolve_Anonymous(t *testing.T) {
	stub := &stubSessionUsecase{
		resolution: &usecase.SessionResolution{State: entity.SessionAnonymous},
	}
	h := NewSessionHandler(stub, slog.Default())

	c, rec := newSessionContext(t, "/session", "")

	require.NoError(t, h.Resolve(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, stub.gotToken)

	body := rec.Body.String()
	assert.Contains(t, body, `"state":"anonymous"`)
	assert.Contains(t, body, `"dashboard":"/login"`)
	assert.NotContains(t, body, `"session"`)
	assert.NotContains(t, body, `"route"`)
}

func TestSessionHandler_Resolve_AuthenticatedWithRoute(t *testing.T) {
	userID := uuid.New()
	stub := &stubSessionUsecase{
		resolution: &usecase.SessionResolution{
			Session: &entity.Session{
				UserID: userID,
				Email:  "owner@example.com",
				Profile: &entity.Profile{
					UserID: userID,
					Role:   entity.RoleStoreOwner,
				},
			},
			State: entity.SessionStoreOwner,
		},
	}
	h := NewSessionHandler(stub, slog.Default())

	c, rec := newSessionContext(t, "/session?path=/login", "owner-access-token")

	require.NoError(t, h.Resolve(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "owner-access-token", stub.gotToken)

	var envelope struct {
		Data struct {
			State     string `json:"state"`
			Dashboard string `json:"dashboard"`
			Route     *struct {
				Path     string `json:"path"`
				Redirect bool   `json:"redirect"`
			} `json:"route"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	assert.Equal(t, "store_owner", envelope.Data.State)
	assert.Equal(t, PathOwnerDashboard, envelope.Data.Dashboard)
	require.NotNil(t, envelope.Data.Route)
	assert.Equal(t, PathOwnerDashboard, envelope.Data.Route.Path)
	assert.True(t, envelope.Data.Route.Redirect)
}

func TestSessionHandler_Resolve_ForcedSignOut(t *testing.T) {
	stub := &stubSessionUsecase{
		resolution: &usecase.SessionResolution{
			State:         entity.SessionAnonymous,
			ForcedSignOut: true,
		},
	}
	h := NewSessionHandler(stub, slog.Default())

	c, rec := newSessionContext(t, "/session", "orphaned-identity-token")

	require.NoError(t, h.Resolve(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"forced_sign_out":true`)
	assert.Contains(t, rec.Body.String(), `"dashboard":"/login"`)
}
