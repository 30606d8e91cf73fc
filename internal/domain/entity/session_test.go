package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSession_State(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name    string
		session *Session
		want    SessionState
	}{
		{name: "nil session", session: nil, want: SessionAnonymous},
		{
			name:    "session without profile",
			session: &Session{UserID: userID},
			want:    SessionAnonymous,
		},
		{
			name:    "admin role",
			session: &Session{UserID: userID, Profile: &Profile{UserID: userID, Role: RoleAdmin}},
			want:    SessionAdmin,
		},
		{
			name:    "store owner role",
			session: &Session{UserID: userID, Profile: &Profile{UserID: userID, Role: RoleStoreOwner}},
			want:    SessionStoreOwner,
		},
		{
			name:    "user role",
			session: &Session{UserID: userID, Profile: &Profile{UserID: userID, Role: RoleUser}},
			want:    SessionUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.session.State())
		})
	}
}
