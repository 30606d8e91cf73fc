// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Name and address bounds enforced for every profile, mirroring the database
// check constraints.
const (
	ProfileNameMinLen    = 20
	ProfileNameMaxLen    = 60
	ProfileAddressMaxLen = 400
)

// User is the authentication identity, representing a unique "person" or "account".
// It carries only identity information; everything role-specific lives on the Profile.
type User struct {
	ID        uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Email     string    // The user's primary contact email, used as a login identifier.
	Profile   *Profile  // The application-level profile. Exactly one per identity; nil only in inconsistent states.
	CreatedAt time.Time // Timestamp of when this user account was created.
	UpdatedAt time.Time // Timestamp of the last modification to this user's data.
}

// Profile is the application-level user record, distinct from the raw identity.
// It is created in the same transaction as the identity and shares its primary key.
type Profile struct {
	UserID    uuid.UUID // Primary key, shared with the authentication identity.
	Name      string    // Display name, 20 to 60 characters.
	Address   string    // Postal address, at most 400 characters.
	Role      Role      // One of admin, store_owner, user.
	CreatedAt time.Time // Timestamp of when this profile was created.
	UpdatedAt time.Time // Timestamp of the last modification to this profile.
}
