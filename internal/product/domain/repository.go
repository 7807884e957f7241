package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, p *Product) error
	Update(ctx context.Context, db *gorm.DB, p *Product) error
	Delete(ctx context.Context, db *gorm.DB, id int64) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Product, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]Product, error)
	SKUExists(ctx context.Context, db *gorm.DB, sku string) (bool, error)

	InsertOptions(ctx context.Context, db *gorm.DB, rows []ProductOption) error
	DeleteOptions(ctx context.Context, db *gorm.DB, productID int64) error
	FindOptions(ctx context.Context, db *gorm.DB, productID int64) ([]OptionRef, error)
	ExistingOptionIDs(ctx context.Context, db *gorm.DB, ids []int64) ([]int64, error)

	ManufacturerName(ctx context.Context, db *gorm.DB, manufacturerID int64) (*string, error)
	DetachOrders(ctx context.Context, db *gorm.DB, productID int64) error
}
