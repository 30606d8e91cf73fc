package handler

import "rater/internal/domain/entity"

// Client view paths the route resolver steers between.
const (
	PathSignIn         = "/login"
	PathSignUp         = "/register"
	PathAdminDashboard = "/admin"
	PathOwnerDashboard = "/owner"
	PathUserDashboard  = "/stores"
)

// RouteResolution is the outcome of resolving a requested view path against
// the current session state.
type RouteResolution struct {
	Path     string `json:"path"`     // The path the client should display.
	Redirect bool   `json:"redirect"` // Whether the client must navigate away from the requested path.
}

// DashboardPath returns the home view of a session state. Anonymous sessions
// land on sign-in.
func DashboardPath(state entity.SessionState) string {
	switch state {
	case entity.SessionAdmin:
		return PathAdminDashboard
	case entity.SessionStoreOwner:
		return PathOwnerDashboard
	case entity.SessionUser:
		return PathUserDashboard
	default:
		return PathSignIn
	}
}

// ResolveRoute decides whether a session state may stay on the requested path.
// Anonymous sessions may only see the sign-in and sign-up views; every role
// state is pinned to its own dashboard. While the first resolution is still
// loading, the requested path is held without redirecting.
func ResolveRoute(state entity.SessionState, path string) RouteResolution {
	if state == entity.SessionLoading {
		return RouteResolution{Path: path}
	}

	if state == entity.SessionAnonymous {
		if path == PathSignIn || path == PathSignUp {
			return RouteResolution{Path: path}
		}

		return RouteResolution{Path: PathSignIn, Redirect: true}
	}

	dashboard := DashboardPath(state)
	if path == dashboard {
		return RouteResolution{Path: path}
	}

	return RouteResolution{Path: dashboard, Redirect: true}
}
