package gateway

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrMissingClientAccount = errors.New("client account id is required")
	ErrInvalidClientAccount = errors.New("client account id must be a UUID")
)

// ValidClientAccountID checks that the tenant id is a 36-character hyphenated
// UUID. Malformed ids are rejected here, before anything goes upstream.
func ValidClientAccountID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// ResolveClientAccount picks the tenant id with header > query > configured
// fallback precedence and validates its shape.
func ResolveClientAccount(header, query, fallback string) (string, error) {
	id := header
	if id == "" {
		id = query
	}
	if id == "" {
		id = fallback
	}
	if id == "" {
		return "", ErrMissingClientAccount
	}
	if !ValidClientAccountID(id) {
		return "", ErrInvalidClientAccount
	}
	return id, nil
}
