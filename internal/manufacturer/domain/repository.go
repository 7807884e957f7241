package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, m *Manufacturer) error
	Update(ctx context.Context, db *gorm.DB, m *Manufacturer) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Manufacturer, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]Manufacturer, error)
	FindProducts(ctx context.Context, db *gorm.DB, id int64) ([]ProductSummary, error)
	DetachProducts(ctx context.Context, db *gorm.DB, id int64) error
}
