package domain

import (
	"context"
	"errors"
)

type Service interface {
	List(ctx context.Context) ([]Option, error)
	Get(ctx context.Context, id int64) (*Option, error)
	Create(ctx context.Context, req CreateRequest) (*Option, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*Option, error)
	Delete(ctx context.Context, id int64) error
}

type CreateRequest struct {
	Name  string
	Image string
}

// UpdateRequest changes only the fields that are set.
type UpdateRequest struct {
	Name  *string
	Image *string
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrNotFound    = errors.New("not_found")
)
