// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Store is a rateable business.
type Store struct {
	ID        uuid.UUID  // The unique ID for this store.
	Name      string     // The store's display name.
	Email     string     // Unique contact email; also the key used for automatic owner assignment.
	Address   string     // The store's postal address.
	OwnerID   *uuid.UUID // Optional owning profile. When set, it must reference a store_owner profile.
	CreatedAt time.Time  // Timestamp of when this store was created.
	UpdatedAt time.Time  // Timestamp of the last modification to this store.
}

// StoreWithRating pairs a store with its derived rating aggregates.
// The aggregates are computed from rating rows on every read and never persisted.
type StoreWithRating struct {
	Store
	AverageRating float64 // Mean of all scores, rounded to one decimal. 0 when unrated.
	TotalRatings  int     // Number of ratings. 0 when unrated.
}
