package domain

import (
	"context"
	"errors"
)

// HeaderName carries the plain admin key on guarded requests.
const HeaderName = "access-Key"

type Service interface {
	// Authenticate returns nil when raw matches the stored admin key.
	Authenticate(ctx context.Context, raw string) error
	// GenerateMasterKey replaces the admin key and returns the plain value once.
	GenerateMasterKey(ctx context.Context) (string, error)
}

var (
	ErrMissingKey = errors.New("missing_key")
	ErrInvalidKey = errors.New("invalid_key")
	ErrNoAdminKey = errors.New("no_admin_key")
)
