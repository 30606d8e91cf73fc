// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role a profile can have in the system.
type Role string

const (
	// RoleAdmin indicates a system administrator role.
	RoleAdmin Role = "admin"
	// RoleStoreOwner indicates a store owner role.
	RoleStoreOwner Role = "store_owner"
	// RoleUser indicates a regular user role.
	RoleUser Role = "user"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleStoreOwner, RoleUser:
		return true
	default:
		return false
	}
}

// ParseRole converts a string to a Role, reporting whether it is a valid role value.
func ParseRole(s string) (Role, bool) {
	role := Role(s)

	return role, role.IsValid()
}
