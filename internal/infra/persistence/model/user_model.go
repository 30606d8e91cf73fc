package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email     string    `gorm:"type:varchar(255);unique;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Profile         *ProfileModel         `gorm:"foreignKey:UserID"`
	Authentications []AuthenticationModel `gorm:"foreignKey:UserID"`
	RefreshTokens   []RefreshTokenModel   `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// ProfileModel mirrors the 'profiles' table. UserID references users.id (UUID).
// Name and address bounds, plus the role whitelist, are enforced by database
// check constraints alongside the application-level validation.
type ProfileModel struct {
	UserID    uuid.UUID `gorm:"primaryKey;type:uuid"`
	Name      string    `gorm:"type:varchar(60);not null;check:char_length(name) BETWEEN 20 AND 60"`
	Address   string    `gorm:"type:varchar(400);not null"`
	Role      string    `gorm:"type:varchar(20);not null;index;check:role IN ('admin','store_owner','user')"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProfileModel) TableName() string {
	return "profiles"
}
