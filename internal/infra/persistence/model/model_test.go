package model

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The model tags are the schema record; these pin the invariants the domain
// relies on.
func TestSchemaInvariants(t *testing.T) {
	tests := []struct {
		name  string
		model any
		field string
		want  string
	}{
		{name: "store deletion cascades to ratings", model: StoreModel{}, field: "Ratings", want: "constraint:OnDelete:CASCADE"},
		{name: "store email is unique", model: StoreModel{}, field: "Email", want: "unique"},
		{name: "one rating per user and store", model: RatingModel{}, field: "UserID", want: "uniqueIndex:idx_ratings_user_store"},
		{name: "score bounded by check constraint", model: RatingModel{}, field: "Score", want: "check:score BETWEEN 1 AND 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, ok := reflect.TypeOf(tt.model).FieldByName(tt.field)
			require.True(t, ok)
			assert.Contains(t, field.Tag.Get("gorm"), tt.want)
		})
	}
}
