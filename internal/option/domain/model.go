package domain

type Option struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`
	Name  string `gorm:"size:64;not null"`
	Image string `gorm:"size:256"`
}

func (Option) TableName() string { return "options" }

type Response struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

func ToResponse(o *Option) Response {
	return Response{ID: o.ID, Name: o.Name, Image: o.Image}
}
