package repository

import (
	"context"

	"github.com/rfernando-oulu/eComSync/internal/order/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, o *domain.Order) error {
	return db.WithContext(ctx).Omit("Product").Create(o).Error
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.Order, error) {
	var items []domain.Order
	err := db.WithContext(ctx).Raw(
		`SELECT id, firstname, lastname, email, telephone, product_id, payment_address_1,
		        payment_city, payment_postcode, payment_country, total, date_added
		 FROM orders ORDER BY id ASC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ProductExists(ctx context.Context, db *gorm.DB, productID int64) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM products WHERE id = ?`,
		productID,
	).Scan(&count).Error
	return count > 0, err
}
