package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"rater/internal/domain/entity"
	"rater/internal/domain/service"
	mockService "rater/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthContext(authorization string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name          string
		authorization string
		want          string
	}{
		{name: "bearer token", authorization: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "missing header", authorization: "", want: ""},
		{name: "basic scheme", authorization: "Basic dXNlcjpwYXNz", want: ""},
		{name: "bare token without scheme", authorization: "abc.def.ghi", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newAuthContext(tt.authorization)
			assert.Equal(t, tt.want, BearerToken(c))
		})
	}
}

func TestAuthenticate_SetsIdentityAndRole(t *testing.T) {
	userID := uuid.New()
	tokenSvc := mockService.NewMockTokenService(t)
	tokenSvc.EXPECT().ValidateAccessToken("valid-token").Return(&service.Claims{
		UserID: userID,
		Role:   entity.RoleAdmin.String(),
		Type:   service.TokenTypeAccess,
	}, nil).Once()

	m := NewAuthMiddleware(tokenSvc)

	var gotUserID uuid.UUID
	var gotRole string
	next := func(c echo.Context) error {
		gotUserID = c.Get(ContextKeyUserID).(uuid.UUID)
		gotRole = c.Get(ContextKeyRole).(string)

		return c.NoContent(http.StatusOK)
	}

	c, rec := newAuthContext("Bearer valid-token")
	require.NoError(t, m.Authenticate(next)(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, gotUserID)
	assert.Equal(t, "admin", gotRole)
}

func TestAuthenticate_MissingToken(t *testing.T) {
	m := NewAuthMiddleware(mockService.NewMockTokenService(t))

	c, _ := newAuthContext("")
	err := m.Authenticate(func(c echo.Context) error { return nil })(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	tokenSvc := mockService.NewMockTokenService(t)
	tokenSvc.EXPECT().ValidateAccessToken("expired").Return(nil, errors.New("token is expired")).Once()

	m := NewAuthMiddleware(tokenSvc)

	c, _ := newAuthContext("Bearer expired")
	err := m.Authenticate(func(c echo.Context) error { return nil })(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestRequireRole(t *testing.T) {
	m := NewAuthMiddleware(mockService.NewMockTokenService(t))
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	t.Run("matching role passes", func(t *testing.T) {
		c, rec := newAuthContext("")
		c.Set(ContextKeyRole, "admin")

		require.NoError(t, m.RequireRole(entity.RoleAdmin)(next)(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("other role is forbidden", func(t *testing.T) {
		c, _ := newAuthContext("")
		c.Set(ContextKeyRole, "user")

		err := m.RequireRole(entity.RoleAdmin)(next)(c)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	})

	t.Run("missing role is forbidden", func(t *testing.T) {
		c, _ := newAuthContext("")

		err := m.RequireRole(entity.RoleAdmin)(next)(c)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	})
}
