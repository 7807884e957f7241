package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	List(ctx context.Context) ([]Order, error)
	Create(ctx context.Context, req CreateRequest) (*Order, error)
}

type CreateRequest struct {
	Firstname       string
	Lastname        string
	Email           string
	Telephone       string
	ProductID       int64
	PaymentAddress1 string
	PaymentCity     string
	PaymentPostcode string
	PaymentCountry  string
	Total           float64
	DateAdded       *time.Time
}

var (
	ErrInvalidFirstname = errors.New("invalid_firstname")
	ErrInvalidEmail     = errors.New("invalid_email")
	ErrInvalidTotal     = errors.New("invalid_total")
	ErrUnknownProduct   = errors.New("invalid_product_id")
)
