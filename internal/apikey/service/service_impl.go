package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"strings"

	apikeydomain "github.com/rfernando-oulu/eComSync/internal/apikey/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const masterKeyBytes = 32

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo apikeydomain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo apikeydomain.Repository
}

func New(p Params) apikeydomain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("apikey.service"),
		repo: p.Repo,
	}
}

func (s *Service) Authenticate(ctx context.Context, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return apikeydomain.ErrMissingKey
	}

	admin, err := s.repo.FindAdmin(ctx, s.db)
	if err != nil {
		return err
	}
	if admin == nil {
		s.log.Warn("admin key requested but none is configured")
		return apikeydomain.ErrNoAdminKey
	}

	if !apikeydomain.HashesEqual(apikeydomain.HashAPIKey(raw), admin.Key) {
		return apikeydomain.ErrInvalidKey
	}
	return nil
}

func (s *Service) GenerateMasterKey(ctx context.Context) (string, error) {
	plain, err := generateToken()
	if err != nil {
		return "", err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.DeleteAdmins(ctx, tx); err != nil {
			return err
		}
		return s.repo.Insert(ctx, tx, &apikeydomain.APIKey{
			Key:   apikeydomain.HashAPIKey(plain),
			Admin: true,
		})
	})
	if err != nil {
		return "", err
	}

	s.log.Info("master key rotated")
	return plain, nil
}

func generateToken() (string, error) {
	secret := make([]byte, masterKeyBytes)
	if _, err := rand.Read(secret); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(secret), nil
}
