package domain

import (
	"time"

	manufacturerdomain "github.com/rfernando-oulu/eComSync/internal/manufacturer/domain"
	optiondomain "github.com/rfernando-oulu/eComSync/internal/option/domain"
)

type Product struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	Name           string    `gorm:"size:64;not null"`
	Description    string    `gorm:"size:256"`
	ManufacturerID *int64    `gorm:"index"`
	SKU            string    `gorm:"column:sku;size:64;not null;uniqueIndex:ux_products_sku"`
	Quantity       int64     `gorm:"not null;default:0"`
	Image          string    `gorm:"size:256"`
	Price          float64   `gorm:"not null;default:0"`
	Width          float64   `gorm:"not null;default:0"`
	DateAdded      time.Time `gorm:"not null"`

	Manufacturer *manufacturerdomain.Manufacturer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func (Product) TableName() string { return "products" }

// ProductOption joins a product to one of its options.
type ProductOption struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	ProductID int64 `gorm:"not null;index"`
	OptionID  int64 `gorm:"not null;index"`

	Product *Product             `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Option  *optiondomain.Option `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (ProductOption) TableName() string { return "product_options" }

// OptionRef is an option attached to a product.
type OptionRef struct {
	ID    int64
	Name  string
	Image string
}

// Detail is a product with its manufacturer name and attached options.
type Detail struct {
	Product
	ManufacturerName *string
	Options          []OptionRef
}
