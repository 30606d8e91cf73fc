package handler

import (
	"testing"

	"rater/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestDashboardPath(t *testing.T) {
	assert.Equal(t, PathAdminDashboard, DashboardPath(entity.SessionAdmin))
	assert.Equal(t, PathOwnerDashboard, DashboardPath(entity.SessionStoreOwner))
	assert.Equal(t, PathUserDashboard, DashboardPath(entity.SessionUser))
	assert.Equal(t, PathSignIn, DashboardPath(entity.SessionAnonymous))
	assert.Equal(t, PathSignIn, DashboardPath(entity.SessionLoading))
}

func TestResolveRoute(t *testing.T) {
	tests := []struct {
		name     string
		state    entity.SessionState
		path     string
		want     string
		redirect bool
	}{
		{name: "loading holds requested path", state: entity.SessionLoading, path: PathAdminDashboard, want: PathAdminDashboard},
		{name: "loading holds sign-in", state: entity.SessionLoading, path: PathSignIn, want: PathSignIn},

		{name: "anonymous may sign in", state: entity.SessionAnonymous, path: PathSignIn, want: PathSignIn},
		{name: "anonymous may sign up", state: entity.SessionAnonymous, path: PathSignUp, want: PathSignUp},
		{name: "anonymous blocked from stores", state: entity.SessionAnonymous, path: PathUserDashboard, want: PathSignIn, redirect: true},
		{name: "anonymous blocked from admin", state: entity.SessionAnonymous, path: PathAdminDashboard, want: PathSignIn, redirect: true},
		{name: "anonymous blocked from owner", state: entity.SessionAnonymous, path: PathOwnerDashboard, want: PathSignIn, redirect: true},

		{name: "admin stays on admin", state: entity.SessionAdmin, path: PathAdminDashboard, want: PathAdminDashboard},
		{name: "admin bounced from sign-in", state: entity.SessionAdmin, path: PathSignIn, want: PathAdminDashboard, redirect: true},
		{name: "admin bounced from owner", state: entity.SessionAdmin, path: PathOwnerDashboard, want: PathAdminDashboard, redirect: true},
		{name: "admin bounced from stores", state: entity.SessionAdmin, path: PathUserDashboard, want: PathAdminDashboard, redirect: true},

		{name: "owner stays on owner", state: entity.SessionStoreOwner, path: PathOwnerDashboard, want: PathOwnerDashboard},
		{name: "owner bounced from admin", state: entity.SessionStoreOwner, path: PathAdminDashboard, want: PathOwnerDashboard, redirect: true},
		{name: "owner bounced from sign-up", state: entity.SessionStoreOwner, path: PathSignUp, want: PathOwnerDashboard, redirect: true},

		{name: "user stays on stores", state: entity.SessionUser, path: PathUserDashboard, want: PathUserDashboard},
		{name: "user bounced from admin", state: entity.SessionUser, path: PathAdminDashboard, want: PathUserDashboard, redirect: true},
		{name: "user bounced from sign-in", state: entity.SessionUser, path: PathSignIn, want: PathUserDashboard, redirect: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveRoute(tt.state, tt.path)

			assert.Equal(t, tt.want, got.Path)
			assert.Equal(t, tt.redirect, got.Redirect)
		})
	}
}
