package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, o *Option) error
	Update(ctx context.Context, db *gorm.DB, o *Option) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Option, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]Option, error)
	DeleteProductOptions(ctx context.Context, db *gorm.DB, id int64) error
}
