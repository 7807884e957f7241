package domain

import (
	"time"

	"github.com/rfernando-oulu/eComSync/pkg/form"
)

type Response struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Description    *string  `json:"description,omitempty"`
	ManufacturerID *int64   `json:"manufacturer_id,omitempty"`
	SKU            *string  `json:"sku,omitempty"`
	Quantity       *int64   `json:"quantity,omitempty"`
	Image          *string  `json:"image,omitempty"`
	Price          *float64 `json:"price,omitempty"`
	Width          *float64 `json:"width,omitempty"`
	DateAdded      *string  `json:"date_added,omitempty"`
}

type OptionResponse struct {
	ID    int64  `json:"option_id"`
	Name  string `json:"option_name"`
	Image string `json:"option_image"`
}

type DetailResponse struct {
	Response
	ManufacturerName *string          `json:"manufacturer_name"`
	Options          []OptionResponse `json:"options"`
}

// ToResponse serializes p. The short form carries only id and name.
func ToResponse(p *Product, f form.Form) Response {
	resp := Response{ID: p.ID, Name: p.Name}
	if !f.IsLong() {
		return resp
	}
	description, sku := p.Description, p.SKU
	quantity, image, price, width := p.Quantity, p.Image, p.Price, p.Width
	dateAdded := p.DateAdded.UTC().Format(time.RFC3339)

	resp.Description = &description
	resp.ManufacturerID = p.ManufacturerID
	resp.SKU = &sku
	resp.Quantity = &quantity
	resp.Image = &image
	resp.Price = &price
	resp.Width = &width
	resp.DateAdded = &dateAdded
	return resp
}

func ToDetailResponse(d *Detail, f form.Form) DetailResponse {
	options := make([]OptionResponse, 0, len(d.Options))
	for _, o := range d.Options {
		options = append(options, OptionResponse{ID: o.ID, Name: o.Name, Image: o.Image})
	}
	return DetailResponse{
		Response:         ToResponse(&d.Product, f),
		ManufacturerName: d.ManufacturerName,
		Options:          options,
	}
}
