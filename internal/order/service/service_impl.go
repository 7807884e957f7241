package service

import (
	"context"
	"strings"

	"github.com/rfernando-oulu/eComSync/internal/clock"
	"github.com/rfernando-oulu/eComSync/internal/order/domain"
	"github.com/rfernando-oulu/eComSync/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	c := p.Clock
	if c == nil {
		c = clock.SystemClock{}
	}
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("order.service"),
		clock: c,
		repo:  p.Repo,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Order, error) {
	items, err := s.repo.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Order{}
	}
	return items, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Order, error) {
	o := &domain.Order{
		Firstname:       strings.TrimSpace(req.Firstname),
		Lastname:        strings.TrimSpace(req.Lastname),
		Email:           strings.TrimSpace(req.Email),
		Telephone:       strings.TrimSpace(req.Telephone),
		ProductID:       &req.ProductID,
		PaymentAddress1: strings.TrimSpace(req.PaymentAddress1),
		PaymentCity:     strings.TrimSpace(req.PaymentCity),
		PaymentPostcode: strings.TrimSpace(req.PaymentPostcode),
		PaymentCountry:  strings.TrimSpace(req.PaymentCountry),
		Total:           req.Total,
		DateAdded:       s.clock.Now().UTC(),
	}
	if req.DateAdded != nil {
		o.DateAdded = req.DateAdded.UTC()
	}

	switch {
	case o.Firstname == "":
		return nil, domain.ErrInvalidFirstname
	case o.Email == "":
		return nil, domain.ErrInvalidEmail
	case o.Total < 0:
		return nil, domain.ErrInvalidTotal
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := s.repo.ProductExists(ctx, tx, req.ProductID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrUnknownProduct
		}
		if err := s.repo.Insert(ctx, tx, o); err != nil {
			if db.IsForeignKeyErr(err) {
				return domain.ErrUnknownProduct
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order created", zap.Int64("order_id", o.ID), zap.Int64("product_id", req.ProductID))
	return o, nil
}
