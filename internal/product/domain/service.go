package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int64) (*Product, error)
	Detail(ctx context.Context, id int64) (*Detail, error)
	Create(ctx context.Context, req CreateRequest) (*Product, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (*Product, error)
	Delete(ctx context.Context, id int64) error
}

type CreateRequest struct {
	Name           string
	Description    string
	ManufacturerID int64
	SKU            string
	Quantity       int64
	Image          string
	Price          float64
	Width          float64
	DateAdded      *time.Time
	OptionIDs      []int64
}

// UpdateRequest overwrites every editable field. The manufacturer and the
// date added are fixed at creation.
type UpdateRequest struct {
	Name        string
	Description string
	SKU         string
	Quantity    int64
	Image       string
	Price       float64
	Width       float64
}

var (
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidSKU          = errors.New("invalid_sku")
	ErrInvalidQuantity     = errors.New("invalid_quantity")
	ErrInvalidPrice        = errors.New("invalid_price")
	ErrInvalidWidth        = errors.New("invalid_width")
	ErrUnknownManufacturer = errors.New("invalid_manufacturer_id")
	ErrUnknownOption       = errors.New("invalid_selected_options")
	ErrSKUExists           = errors.New("sku_exists")
	ErrSKUConflict         = errors.New("sku_conflict")
	ErrNotFound            = errors.New("not_found")
)
