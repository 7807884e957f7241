package repository

import (
	"context"

	"github.com/rfernando-oulu/eComSync/internal/manufacturer/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, m *domain.Manufacturer) error {
	return db.WithContext(ctx).Create(m).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, m *domain.Manufacturer) error {
	return db.WithContext(ctx).Exec(
		`UPDATE manufacturers SET name = ?, image = ?, description = ? WHERE id = ?`,
		m.Name,
		m.Image,
		m.Description,
		m.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Exec(`DELETE FROM manufacturers WHERE id = ?`, id).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Manufacturer, error) {
	var m domain.Manufacturer
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, image, description FROM manufacturers WHERE id = ?`,
		id,
	).Scan(&m).Error
	if err != nil {
		return nil, err
	}
	if m.ID == 0 {
		return nil, nil
	}
	return &m, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.Manufacturer, error) {
	var items []domain.Manufacturer
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, image, description FROM manufacturers ORDER BY id ASC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindProducts(ctx context.Context, db *gorm.DB, id int64) ([]domain.ProductSummary, error) {
	var items []domain.ProductSummary
	err := db.WithContext(ctx).Raw(
		`SELECT id, name FROM products WHERE manufacturer_id = ? ORDER BY id ASC`,
		id,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// DetachProducts clears manufacturer_id on the manufacturer's products.
func (r *repo) DetachProducts(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Exec(`UPDATE products SET manufacturer_id = NULL WHERE manufacturer_id = ?`, id).Error
}
