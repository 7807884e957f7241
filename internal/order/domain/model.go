package domain

import (
	"time"

	productdomain "github.com/rfernando-oulu/eComSync/internal/product/domain"
	"github.com/rfernando-oulu/eComSync/pkg/form"
)

type Order struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	Firstname       string    `gorm:"size:64;not null"`
	Lastname        string    `gorm:"size:64"`
	Email           string    `gorm:"size:128;not null"`
	Telephone       string    `gorm:"size:32"`
	ProductID       *int64    `gorm:"index"`
	PaymentAddress1 string    `gorm:"column:payment_address_1;size:128"`
	PaymentCity     string    `gorm:"size:128"`
	PaymentPostcode string    `gorm:"size:10"`
	PaymentCountry  string    `gorm:"size:128"`
	Total           float64   `gorm:"not null;default:0"`
	DateAdded       time.Time `gorm:"not null"`

	Product *productdomain.Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func (Order) TableName() string { return "orders" }

type Response struct {
	ID              int64    `json:"id"`
	Firstname       string   `json:"firstname"`
	Email           string   `json:"email"`
	Lastname        *string  `json:"lastname,omitempty"`
	Telephone       *string  `json:"telephone,omitempty"`
	ProductID       *int64   `json:"product_id,omitempty"`
	PaymentAddress1 *string  `json:"payment_address_1,omitempty"`
	PaymentCity     *string  `json:"payment_city,omitempty"`
	PaymentPostcode *string  `json:"payment_postcode,omitempty"`
	PaymentCountry  *string  `json:"payment_country,omitempty"`
	Total           *float64 `json:"total,omitempty"`
	DateAdded       *string  `json:"date_added,omitempty"`
}

// ToResponse serializes o. The short form carries id, firstname and email.
func ToResponse(o *Order, f form.Form) Response {
	resp := Response{ID: o.ID, Firstname: o.Firstname, Email: o.Email}
	if !f.IsLong() {
		return resp
	}
	lastname, telephone := o.Lastname, o.Telephone
	address, city, postcode, country := o.PaymentAddress1, o.PaymentCity, o.PaymentPostcode, o.PaymentCountry
	total := o.Total
	dateAdded := o.DateAdded.UTC().Format(time.RFC3339)

	resp.Lastname = &lastname
	resp.Telephone = &telephone
	resp.ProductID = o.ProductID
	resp.PaymentAddress1 = &address
	resp.PaymentCity = &city
	resp.PaymentPostcode = &postcode
	resp.PaymentCountry = &country
	resp.Total = &total
	resp.DateAdded = &dateAdded
	return resp
}
