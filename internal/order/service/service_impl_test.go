package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rfernando-oulu/eComSync/internal/clock"
	manufacturerdomain "github.com/rfernando-oulu/eComSync/internal/manufacturer/domain"
	"github.com/rfernando-oulu/eComSync/internal/order/domain"
	"github.com/rfernando-oulu/eComSync/internal/order/repository"
	productdomain "github.com/rfernando-oulu/eComSync/internal/product/domain"
	"github.com/rfernando-oulu/eComSync/pkg/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, conn.AutoMigrate(&manufacturerdomain.Manufacturer{}, &productdomain.Product{}, &domain.Order{}))

	require.NoError(t, conn.Create(&manufacturerdomain.Manufacturer{ID: 2, Name: "Arnette"}).Error)
	manufacturerID := int64(2)
	require.NoError(t, conn.Omit("Manufacturer").Create(&productdomain.Product{
		ID: 1, Name: "Rage 4025", ManufacturerID: &manufacturerID, SKU: "ANX4025000008BF2", DateAdded: now,
	}).Error)
	return conn
}

func newService(db *gorm.DB) domain.Service {
	return New(Params{DB: db, Log: zap.NewNop(), Clock: clock.NewFakeClock(now), Repo: repository.Provide()})
}

func orderRequest(productID int64) domain.CreateRequest {
	return domain.CreateRequest{
		Firstname:       "Roshan",
		Lastname:        "Fernando",
		Email:           "roshan@example.com",
		Telephone:       "0123654789",
		ProductID:       productID,
		PaymentAddress1: "yliopistokatu",
		PaymentCity:     "Oulu",
		PaymentPostcode: "90570",
		PaymentCountry:  "Finland",
		Total:           39.55,
	}
}

func TestCreateAndList(t *testing.T) {
	svc := newService(setupTestDB(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, orderRequest(1))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, now, created.DateAdded)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "yliopistokatu", items[0].PaymentAddress1)
	require.NotNil(t, items[0].ProductID)
	assert.Equal(t, int64(1), *items[0].ProductID)

	long := domain.ToResponse(&items[0], form.Long)
	require.NotNil(t, long.Total)
	assert.Equal(t, 39.55, *long.Total)
	short := domain.ToResponse(&items[0], form.Short)
	assert.Nil(t, short.Telephone)
	assert.Equal(t, "roshan@example.com", short.Email)
}

func TestCreateRejectsUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	svc := newService(db)

	_, err := svc.Create(context.Background(), orderRequest(212))
	assert.ErrorIs(t, err, domain.ErrUnknownProduct)

	var count int64
	require.NoError(t, db.Model(&domain.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateValidation(t *testing.T) {
	svc := newService(setupTestDB(t))

	req := orderRequest(1)
	req.Firstname = ""
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidFirstname)

	req = orderRequest(1)
	req.Total = -5
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidTotal)
}
