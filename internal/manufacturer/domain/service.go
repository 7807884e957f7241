package domain

import (
	"context"
	"errors"
)

type Service interface {
	List(ctx context.Context) ([]Manufacturer, error)
	Get(ctx context.Context, id int64) (*Manufacturer, error)
	Products(ctx context.Context, id int64) ([]ProductSummary, error)
	Create(ctx context.Context, req CreateRequest) (*Manufacturer, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*Manufacturer, error)
	Delete(ctx context.Context, id int64) error
}

type CreateRequest struct {
	Name        string
	Image       string
	Description string
}

// UpdateRequest overwrites every field.
type UpdateRequest struct {
	Name        string
	Image       string
	Description string
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidID   = errors.New("invalid_id")
	ErrNotFound    = errors.New("not_found")
)
