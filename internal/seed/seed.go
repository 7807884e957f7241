package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	manufacturerdomain "github.com/rfernando-oulu/eComSync/internal/manufacturer/domain"
	optiondomain "github.com/rfernando-oulu/eComSync/internal/option/domain"
	orderdomain "github.com/rfernando-oulu/eComSync/internal/order/domain"
	productdomain "github.com/rfernando-oulu/eComSync/internal/product/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Result counts the rows inserted per table. Tables that already held rows
// are reported as skipped.
type Result struct {
	Manufacturers  int
	Options        int
	Products       int
	ProductOptions int
	Orders         int
	Skipped        []string
}

// PopulateCatalog loads the sunglasses sample catalog. Each table is only
// filled when it is empty, so running it twice is harmless.
func PopulateCatalog(ctx context.Context, db *gorm.DB) (Result, error) {
	if db == nil {
		return Result{}, errors.New("seed database handle is required")
	}

	var res Result
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		manufacturerRows := manufacturers()
		optionRows := options()
		productRows := products()
		productOptionRows := productOptions()
		orderRows := orders()

		steps := []struct {
			table  string
			rows   any
			count  int
			target *int
		}{
			{"manufacturers", &manufacturerRows, len(manufacturerRows), &res.Manufacturers},
			{"options", &optionRows, len(optionRows), &res.Options},
			{"products", &productRows, len(productRows), &res.Products},
			{"product_options", &productOptionRows, len(productOptionRows), &res.ProductOptions},
			{"orders", &orderRows, len(orderRows), &res.Orders},
		}

		for _, step := range steps {
			empty, err := isEmpty(tx, step.table)
			if err != nil {
				return err
			}
			if !empty {
				res.Skipped = append(res.Skipped, step.table)
				continue
			}
			if err := tx.Omit(clause.Associations).Create(step.rows).Error; err != nil {
				return fmt.Errorf("seed %s: %w", step.table, err)
			}
			if err := resetSequence(tx, step.table); err != nil {
				return fmt.Errorf("reset %s sequence: %w", step.table, err)
			}
			*step.target = step.count
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

func isEmpty(tx *gorm.DB, table string) (bool, error) {
	var count int64
	if err := tx.Table(table).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

// Explicit ids leave postgres serial sequences behind the table contents.
func resetSequence(tx *gorm.DB, table string) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec(
		fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('%s', 'id'), (SELECT MAX(id) FROM %s))`, table, table),
	).Error
}

func manufacturers() []manufacturerdomain.Manufacturer {
	names := []struct {
		name string
		slug string
	}{
		{"Ray Ban", "ray-ban"},
		{"Arnette", "arnette"},
		{"Oakley", "oakley"},
		{"Burberry", "burberry"},
		{"Dior", "dior"},
		{"Dolce & Gabbana", "dolce-gabbana"},
		{"Emporio Armani", "emporio-armani"},
		{"Fendi", "fendi"},
		{"Gucci", "gucci"},
		{"Hugo Boss", "hugo-boss"},
		{"Jimmy Choo", "jimmy-choo"},
		{"Kate Spade", "kate-spade"},
		{"Lacoste", "lacoste"},
		{"Marc Jacobs", "marc-jacobs"},
		{"Michael Kors", "michael-kors"},
		{"Miu Miu", "miu-miu"},
		{"Prada", "prada"},
		{"Polo Ralph Lauren", "polo-ralph-lauren"},
		{"Versace", "versace"},
		{"Swarovski", "swarovski"},
		{"Tom Ford", "tom-ford"},
	}

	rows := make([]manufacturerdomain.Manufacturer, 0, len(names))
	for i, n := range names {
		rows = append(rows, manufacturerdomain.Manufacturer{
			ID:          int64(i + 1),
			Name:        n.name,
			Image:       "/image/" + n.slug + ".jpg",
			Description: n.name + " Sunglass Lenses",
		})
	}
	return rows
}

func options() []optiondomain.Option {
	names := []struct {
		name string
		slug string
	}{
		{"Black", "black"},
		{"Black Gradient", "black-gradient"},
		{"Brown", "brown"},
		{"Brown Gradient", "brown-gradient"},
		{"Green", "green"},
		{"Flash Silver", "flash-silver"},
		{"Purple Blue", "purple-blue"},
		{"Light Blue", "light-blue"},
		{"Yellow", "yellow"},
		{"Rose Gold", "rose-gold"},
		{"Red Orange", "red-orange"},
		{"Blue", "blue"},
	}

	rows := make([]optiondomain.Option, 0, len(names))
	for i, n := range names {
		rows = append(rows, optiondomain.Option{
			ID:    int64(i + 1),
			Name:  n.name,
			Image: "/image/options/" + n.slug + ".jpg",
		})
	}
	return rows
}

var catalogDate = time.Date(2023, 2, 27, 2, 14, 38, 0, time.UTC)

func products() []productdomain.Product {
	product := func(id int64, name, description string, manufacturerID int64, sku, image string) productdomain.Product {
		return productdomain.Product{
			ID:             id,
			Name:           name,
			Description:    description,
			ManufacturerID: &manufacturerID,
			SKU:            sku,
			Quantity:       1000,
			Image:          image,
			Price:          39.55,
			Width:          3,
			DateAdded:      catalogDate,
		}
	}

	return []productdomain.Product{
		product(1, "Rage 4025", "Arnette Rage 4025 Sunglass", 2, "ANX4025000008BF2", "/image/products/rage_4025.jpg"),
		product(2, "RB3357", "Ray Ban RB3357 Sunglass", 1, "RBX335700000006B", "/image/products/RB3357.jpg"),
		product(3, "GG2598", "Gucci GG2598 Sunglass", 9, "GUCXGG259800006B", "/image/products/GG2598.jpg"),
		product(4, "Hijinx OO9021", "Oakley Hijinx Sunglass", 3, "OAKXHIJINX006BF1", "/image/products/hijinx_OO9021.jpg"),
	}
}

func productOptions() []productdomain.ProductOption {
	pairs := [][2]int64{
		{1, 1}, {1, 2}, {1, 3}, {1, 4},
		{2, 5}, {2, 6}, {2, 7}, {2, 8},
		{3, 9}, {3, 10}, {3, 11},
		{4, 12}, {4, 1}, {4, 2},
	}

	rows := make([]productdomain.ProductOption, 0, len(pairs))
	for i, p := range pairs {
		rows = append(rows, productdomain.ProductOption{
			ID:        int64(i + 1),
			ProductID: p[0],
			OptionID:  p[1],
		})
	}
	return rows
}

var orderDate = time.Date(2019, 2, 27, 2, 14, 38, 0, time.UTC)

func orders() []orderdomain.Order {
	order := func(id int64, firstname, lastname, email string, productID int64) orderdomain.Order {
		return orderdomain.Order{
			ID:              id,
			Firstname:       firstname,
			Lastname:        lastname,
			Email:           email,
			Telephone:       "0123654789",
			ProductID:       &productID,
			PaymentAddress1: "yliopistokatu",
			PaymentCity:     "Oulu",
			PaymentPostcode: "90570",
			PaymentCountry:  "Finland",
			Total:           39.55,
			DateAdded:       orderDate,
		}
	}

	return []orderdomain.Order{
		order(1, "Roshan", "Fernando", "roshan@gmail.com", 1),
		order(2, "Dilshani", "Vithanage", "dilshani@gmail.com", 2),
		order(3, "Mithum", "Fernando", "mithum@gmail.com", 3),
	}
}
