package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rater/internal/delivery/http/validator"
	"rater/internal/domain/entity"
	"rater/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAuthUsecase records the sign-up calls that reach the usecase layer.
type stubAuthUsecase struct {
	signUpCalls int
	user        *entity.User
}

func (s *stubAuthUsecase) SignUp(_ context.Context, _ *usecase.SignUpInput) (*usecase.SignUpOutput, error) {
	s.signUpCalls++

	return &usecase.SignUpOutput{User: s.user}, nil
}

func (s *stubAuthUsecase) CreateUserWithRole(_ context.Context, _ uuid.UUID, _ *usecase.CreateUserInput) (*usecase.SignUpOutput, error) {
	return nil, nil
}

func (s *stubAuthUsecase) SignIn(_ context.Context, _ *usecase.SignInInput) (*usecase.AuthResult, error) {
	return nil, nil
}

func (s *stubAuthUsecase) SignOut(_ context.Context, _ *usecase.SignOutInput) error {
	return nil
}

func (s *stubAuthUsecase) RefreshToken(_ context.Context, _ *usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error) {
	return nil, nil
}

func (s *stubAuthUsecase) ChangePassword(_ context.Context, _ uuid.UUID, _ *usecase.ChangePasswordInput) error {
	return nil
}

func newSignUpContext(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validator.New()

	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAuthHandler_SignUp_Success(t *testing.T) {
	stub := &stubAuthUsecase{user: &entity.User{ID: uuid.New(), Email: "anna@example.com"}}
	h := NewAuthHandler(stub, slog.Default())

	body := `{"name":"Annabelle Rosalind Granger","email":"anna@example.com","address":"12 Hill Rd","password":"Str0ngPass!"}`
	c, rec := newSignUpContext(body)

	require.NoError(t, h.SignUp(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, stub.signUpCalls)
}

func TestAuthHandler_SignUp_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "name too short", body: `{"name":"Too Short","email":"anna@example.com","password":"Str0ngPass!"}`},
		{name: "malformed email", body: `{"name":"Annabelle Rosalind Granger","email":"not-an-email","password":"Str0ngPass!"}`},
		{name: "missing password", body: `{"name":"Annabelle Rosalind Granger","email":"anna@example.com"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubAuthUsecase{}
			h := NewAuthHandler(stub, slog.Default())

			c, rec := newSignUpContext(tt.body)

			require.NoError(t, h.SignUp(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
			assert.Zero(t, stub.signUpCalls)
		})
	}
}
