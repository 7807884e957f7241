package repository

import (
	"context"
	"errors"

	apikeydomain "github.com/rfernando-oulu/eComSync/internal/apikey/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() apikeydomain.Repository {
	return &repo{}
}

// "key" is reserved in MySQL, so this repository goes through the query
// builder, which quotes identifiers per dialect.

func (r *repo) FindAdmin(ctx context.Context, db *gorm.DB) (*apikeydomain.APIKey, error) {
	var key apikeydomain.APIKey
	err := db.WithContext(ctx).
		Where(&apikeydomain.APIKey{Admin: true}).
		Take(&key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &key, nil
}

func (r *repo) DeleteAdmins(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).
		Where("admin = ?", true).
		Delete(&apikeydomain.APIKey{}).Error
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, key *apikeydomain.APIKey) error {
	return db.WithContext(ctx).Create(key).Error
}
