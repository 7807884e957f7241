package service

import (
	"context"
	"strings"

	"github.com/rfernando-oulu/eComSync/internal/manufacturer/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("manufacturer.service"),
		repo: p.Repo,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Manufacturer, error) {
	items, err := s.repo.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Manufacturer{}
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Manufacturer, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidID
	}
	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (s *Service) Products(ctx context.Context, id int64) ([]domain.ProductSummary, error) {
	items, err := s.repo.FindProducts(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.ProductSummary{}
	}
	return items, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Manufacturer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	m := &domain.Manufacturer{
		Name:        name,
		Image:       strings.TrimSpace(req.Image),
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.repo.Insert(ctx, s.db, m); err != nil {
		return nil, err
	}

	s.log.Info("manufacturer created", zap.Int64("manufacturer_id", m.ID))
	return m, nil
}

func (s *Service) Update(ctx context.Context, id int64, req domain.UpdateRequest) (*domain.Manufacturer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	var updated *domain.Manufacturer
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}

		current.Name = name
		current.Image = strings.TrimSpace(req.Image)
		current.Description = strings.TrimSpace(req.Description)
		if err := s.repo.Update(ctx, tx, current); err != nil {
			return err
		}
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the manufacturer. Its products stay, without a manufacturer.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}

		if err := s.repo.DetachProducts(ctx, tx, id); err != nil {
			return err
		}

		if err := s.repo.Delete(ctx, tx, id); err != nil {
			return err
		}
		s.log.Info("manufacturer deleted", zap.Int64("manufacturer_id", id))
		return nil
	})
}
