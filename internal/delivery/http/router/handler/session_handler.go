package handler

import (
	"log/slog"
	"net/http"

	"rater/internal/delivery/http/middleware"
	"rater/internal/delivery/http/response"
	"rater/internal/domain/entity"
	"rater/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SessionHandler resolves the caller's session for the client's view router.
type SessionHandler struct {
	uc     usecase.SessionUsecase
	logger *slog.Logger
}

// NewSessionHandler is the constructor for SessionHandler, injected by Fx.
func NewSessionHandler(uc usecase.SessionUsecase, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		uc:     uc,
		logger: logger,
	}
}

// sessionView is the payload the client's view router consumes.
type sessionView struct {
	State         entity.SessionState `json:"state"`
	Session       *entity.Session     `json:"session,omitempty"`
	ForcedSignOut bool                `json:"forced_sign_out"`
	Dashboard     string              `json:"dashboard"`
	Route         *RouteResolution    `json:"route,omitempty"`
}

// Resolve handles the session resolution request. The bearer token is
// optional: an absent or invalid token resolves to an anonymous session
// rather than an error. The optional path query parameter additionally
// resolves a requested view path against the session state.
func (h *SessionHandler) Resolve(c echo.Context) error {
	token := middleware.BearerToken(c)

	resolution, err := h.uc.Resolve(c.Request().Context(), token)
	if err != nil {
		return errors.WithStack(err)
	}

	view := &sessionView{
		State:         resolution.State,
		Session:       resolution.Session,
		ForcedSignOut: resolution.ForcedSignOut,
		Dashboard:     DashboardPath(resolution.State),
	}

	if path := c.QueryParam("path"); path != "" {
		route := ResolveRoute(resolution.State, path)
		view.Route = &route
	}

	return response.Success(c, http.StatusOK, view, "Session resolved")
}
