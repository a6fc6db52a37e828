// Package id provides entity identifier generation.
// Uses UUIDv7 for time-ordered, index-friendly primary keys.
package id

import (
	"github.com/google/uuid"
)

// ID is the entity identifier type.
type ID = uuid.UUID

// New generates a new UUIDv7 identifier.
// Falls back to UUIDv4 if the monotonic source fails.
func New() ID {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return v7
}

// Parse parses an ID from its string form.
func Parse(s string) (ID, error) {
	return uuid.Parse(s)
}

// MustParse parses an ID and panics on failure. Use only for constants and tests.
func MustParse(s string) ID {
	return uuid.MustParse(s)
}

// Nil is the zero ID.
var Nil = uuid.Nil

// IsNil reports whether id is the zero ID.
func IsNil(id ID) bool {
	return id == uuid.Nil
}
