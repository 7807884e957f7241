package domain

import "github.com/rfernando-oulu/eComSync/pkg/form"

type Manufacturer struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"size:64;not null"`
	Image       string `gorm:"size:256"`
	Description string `gorm:"size:256"`
}

func (Manufacturer) TableName() string { return "manufacturers" }

// ProductSummary is a product as listed under its manufacturer.
type ProductSummary struct {
	ID   int64
	Name string
}

type Response struct {
	ID          *int64  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Image       *string `json:"image,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ToResponse serializes m for the collection. The short form is the name
// alone, the long form adds the description. Collection items are addressed
// through their controls, so neither form carries the id.
func ToResponse(m *Manufacturer, f form.Form) Response {
	resp := Response{Name: m.Name}
	if f.IsLong() {
		description := m.Description
		resp.Description = &description
	}
	return resp
}

// ToDetailResponse is the single-manufacturer view with every column.
func ToDetailResponse(m *Manufacturer) Response {
	id, image, description := m.ID, m.Image, m.Description
	return Response{ID: &id, Name: m.Name, Image: &image, Description: &description}
}
