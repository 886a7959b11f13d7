package models

import "github.com/google/uuid"

// NewID returns a fresh opaque identifier for any entity.
func NewID() string {
	return uuid.NewString()
}

// orEmpty keeps list fields serializing as [] instead of null.
func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
