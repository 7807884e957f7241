package repository

import (
	"context"

	"github.com/rfernando-oulu/eComSync/internal/product/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

const productColumns = `id, name, description, manufacturer_id, sku, quantity, image, price, width, date_added`

func (r *repo) Insert(ctx context.Context, db *gorm.DB, p *domain.Product) error {
	return db.WithContext(ctx).Omit("Manufacturer").Create(p).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, p *domain.Product) error {
	return db.WithContext(ctx).Exec(
		`UPDATE products
		 SET name = ?, description = ?, sku = ?, quantity = ?, image = ?, price = ?, width = ?
		 WHERE id = ?`,
		p.Name,
		p.Description,
		p.SKU,
		p.Quantity,
		p.Image,
		p.Price,
		p.Width,
		p.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Exec(`DELETE FROM products WHERE id = ?`, id).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Product, error) {
	var p domain.Product
	err := db.WithContext(ctx).Raw(
		`SELECT `+productColumns+` FROM products WHERE id = ?`,
		id,
	).Scan(&p).Error
	if err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, nil
	}
	return &p, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.Product, error) {
	var items []domain.Product
	err := db.WithContext(ctx).Raw(
		`SELECT ` + productColumns + ` FROM products ORDER BY id ASC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) SKUExists(ctx context.Context, db *gorm.DB, sku string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM products WHERE sku = ?`,
		sku,
	).Scan(&count).Error
	return count > 0, err
}

func (r *repo) InsertOptions(ctx context.Context, db *gorm.DB, rows []domain.ProductOption) error {
	if len(rows) == 0 {
		return nil
	}
	return db.WithContext(ctx).Omit("Product", "Option").Create(&rows).Error
}

func (r *repo) DeleteOptions(ctx context.Context, db *gorm.DB, productID int64) error {
	return db.WithContext(ctx).Exec(`DELETE FROM product_options WHERE product_id = ?`, productID).Error
}

func (r *repo) FindOptions(ctx context.Context, db *gorm.DB, productID int64) ([]domain.OptionRef, error) {
	var items []domain.OptionRef
	err := db.WithContext(ctx).Raw(
		`SELECT o.id AS id, o.name AS name, o.image AS image
		 FROM product_options po
		 JOIN options o ON o.id = po.option_id
		 WHERE po.product_id = ?
		 ORDER BY po.id ASC`,
		productID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ExistingOptionIDs(ctx context.Context, db *gorm.DB, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []int64
	err := db.WithContext(ctx).Raw(
		`SELECT id FROM options WHERE id IN ?`,
		ids,
	).Scan(&found).Error
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *repo) ManufacturerName(ctx context.Context, db *gorm.DB, manufacturerID int64) (*string, error) {
	var names []string
	err := db.WithContext(ctx).Raw(
		`SELECT name FROM manufacturers WHERE id = ?`,
		manufacturerID,
	).Scan(&names).Error
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, nil
	}
	return &names[0], nil
}

// DetachOrders clears product_id on the product's orders. Orders outlive the
// product they were placed for.
func (r *repo) DetachOrders(ctx context.Context, db *gorm.DB, productID int64) error {
	return db.WithContext(ctx).Exec(`UPDATE orders SET product_id = NULL WHERE product_id = ?`, productID).Error
}
