// Package entity contains the core business objects of the project.
package entity

import "github.com/google/uuid"

// SessionState is the state of the role-based view router.
// It starts at loading, moves to anonymous or a role state on the first session
// resolution, and afterwards transitions directly between anonymous and the
// role states; loading is never re-entered.
type SessionState string

const (
	// SessionLoading is the initial state before the first session resolution completes.
	SessionLoading SessionState = "loading"
	// SessionAnonymous is the state of a signed-out session.
	SessionAnonymous SessionState = "anonymous"
	// SessionAdmin is the state of a session whose profile role is admin.
	SessionAdmin SessionState = "admin"
	// SessionStoreOwner is the state of a session whose profile role is store_owner.
	SessionStoreOwner SessionState = "store_owner"
	// SessionUser is the state of a session whose profile role is user.
	SessionUser SessionState = "user"
)

// Session is the resolved identity-plus-profile snapshot of a signed-in user.
// A nil Session means the caller is anonymous.
type Session struct {
	UserID  uuid.UUID
	Email   string
	Profile *Profile
}

// State maps a resolved session to its router state. A nil session is anonymous;
// a session always carries a profile (resolution forces sign-out otherwise), so
// the state is named by the profile's role.
func (s *Session) State() SessionState {
	if s == nil || s.Profile == nil {
		return SessionAnonymous
	}

	switch s.Profile.Role {
	case RoleAdmin:
		return SessionAdmin
	case RoleStoreOwner:
		return SessionStoreOwner
	default:
		return SessionUser
	}
}
