package service

import (
	"context"
	"slices"
	"strings"

	"github.com/rfernando-oulu/eComSync/internal/clock"
	"github.com/rfernando-oulu/eComSync/internal/product/domain"
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
		log:   p.Log.Named("product.service"),
		clock: c,
		repo:  p.Repo,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	items, err := s.repo.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Product{}
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (s *Service) Detail(ctx context.Context, id int64) (*domain.Detail, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var name *string
	if item.ManufacturerID != nil {
		name, err = s.repo.ManufacturerName(ctx, s.db, *item.ManufacturerID)
		if err != nil {
			return nil, err
		}
	}
	options, err := s.repo.FindOptions(ctx, s.db, item.ID)
	if err != nil {
		return nil, err
	}
	if options == nil {
		options = []domain.OptionRef{}
	}

	return &domain.Detail{
		Product:          *item,
		ManufacturerName: name,
		Options:          options,
	}, nil
}

// Create stores the product and one ProductOption per selected option id in
// a single transaction.
func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Product, error) {
	p := &domain.Product{
		Name:           strings.TrimSpace(req.Name),
		Description:    strings.TrimSpace(req.Description),
		ManufacturerID: &req.ManufacturerID,
		SKU:            strings.TrimSpace(req.SKU),
		Quantity:       req.Quantity,
		Image:          strings.TrimSpace(req.Image),
		Price:          req.Price,
		Width:          req.Width,
		DateAdded:      s.clock.Now().UTC(),
	}
	if req.DateAdded != nil {
		p.DateAdded = req.DateAdded.UTC()
	}
	if err := validate(p); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := s.repo.SKUExists(ctx, tx, p.SKU)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrSKUExists
		}

		name, err := s.repo.ManufacturerName(ctx, tx, req.ManufacturerID)
		if err != nil {
			return err
		}
		if name == nil {
			return domain.ErrUnknownManufacturer
		}

		if err := s.checkOptions(ctx, tx, req.OptionIDs); err != nil {
			return err
		}

		if err := s.repo.Insert(ctx, tx, p); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return domain.ErrSKUExists
			}
			return err
		}

		rows := make([]domain.ProductOption, 0, len(req.OptionIDs))
		for _, optionID := range req.OptionIDs {
			rows = append(rows, domain.ProductOption{ProductID: p.ID, OptionID: optionID})
		}
		return s.repo.InsertOptions(ctx, tx, rows)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("product created",
		zap.Int64("product_id", p.ID),
		zap.String("sku", p.SKU),
		zap.Int("options", len(req.OptionIDs)),
	)
	return p, nil
}

func (s *Service) Update(ctx context.Context, id int64, req domain.UpdateRequest) (*domain.Product, error) {
	var updated *domain.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}

		current.Name = strings.TrimSpace(req.Name)
		current.Description = strings.TrimSpace(req.Description)
		current.SKU = strings.TrimSpace(req.SKU)
		current.Quantity = req.Quantity
		current.Image = strings.TrimSpace(req.Image)
		current.Price = req.Price
		current.Width = req.Width
		if err := validate(current); err != nil {
			return err
		}

		if err := s.repo.Update(ctx, tx, current); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return domain.ErrSKUConflict
			}
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

// Delete removes the product together with its option rows. Its orders are
// kept with product_id cleared.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}

		if err := s.repo.DetachOrders(ctx, tx, id); err != nil {
			return err
		}

		if err := s.repo.DeleteOptions(ctx, tx, id); err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, tx, id); err != nil {
			return err
		}
		s.log.Info("product deleted", zap.Int64("product_id", id))
		return nil
	})
}

func (s *Service) checkOptions(ctx context.Context, tx *gorm.DB, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := s.repo.ExistingOptionIDs(ctx, tx, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if !slices.Contains(found, id) {
			return domain.ErrUnknownOption
		}
	}
	return nil
}

func validate(p *domain.Product) error {
	switch {
	case p.Name == "":
		return domain.ErrInvalidName
	case p.SKU == "":
		return domain.ErrInvalidSKU
	case p.Quantity < 0:
		return domain.ErrInvalidQuantity
	case p.Price < 0:
		return domain.ErrInvalidPrice
	case p.Width < 0:
		return domain.ErrInvalidWidth
	}
	return nil
}
