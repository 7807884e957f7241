package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	FindAdmin(ctx context.Context, db *gorm.DB) (*APIKey, error)
	DeleteAdmins(ctx context.Context, db *gorm.DB) error
	Insert(ctx context.Context, db *gorm.DB, key *APIKey) error
}
