package model

import "github.com/google/uuid"

// NewID returns a fresh time-ordered identifier for a new record.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Ref returns a pointer to id, for setting optional foreign keys.
func Ref(id string) *string {
	return &id
}
