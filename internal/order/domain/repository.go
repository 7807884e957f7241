package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, o *Order) error
	FindAll(ctx context.Context, db *gorm.DB) ([]Order, error)
	ProductExists(ctx context.Context, db *gorm.DB, productID int64) (bool, error)
}
