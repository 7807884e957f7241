package repository

import (
	"context"

	"github.com/rfernando-oulu/eComSync/internal/option/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, o *domain.Option) error {
	return db.WithContext(ctx).Create(o).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, o *domain.Option) error {
	return db.WithContext(ctx).Exec(
		`UPDATE options SET name = ?, image = ? WHERE id = ?`,
		o.Name,
		o.Image,
		o.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Exec(`DELETE FROM options WHERE id = ?`, id).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Option, error) {
	var o domain.Option
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, image FROM options WHERE id = ?`,
		id,
	).Scan(&o).Error
	if err != nil {
		return nil, err
	}
	if o.ID == 0 {
		return nil, nil
	}
	return &o, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.Option, error) {
	var items []domain.Option
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, image FROM options ORDER BY id ASC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) DeleteProductOptions(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Exec(`DELETE FROM product_options WHERE option_id = ?`, id).Error
}
