package authorization

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func newTestService(t *testing.T, db *gorm.DB) Service {
	t.Helper()

	enforcer, err := NewEnforcer(db)
	require.NoError(t, err)
	return NewService(Params{Log: zap.NewNop(), Enforcer: enforcer})
}

func TestAuthorizeDefaultPolicy(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))
	ctx := context.Background()

	cases := []struct {
		role    string
		object  string
		action  string
		allowed bool
	}{
		{RoleAnonymous, ObjectManufacturer, ActionManufacturerList, false},
		{RoleAnonymous, ObjectManufacturer, ActionManufacturerView, true},
		{RoleAnonymous, ObjectManufacturer, ActionManufacturerCreate, true},
		{RoleAnonymous, ObjectProduct, ActionProductDelete, true},
		{RoleAnonymous, ObjectOption, ActionOptionList, false},
		{RoleAnonymous, ObjectOption, ActionOptionCreate, false},
		{RoleAnonymous, ObjectOption, ActionOptionDelete, false},
		{RoleAnonymous, ObjectOption, ActionOptionUpdate, true},
		{RoleAnonymous, ObjectOrder, ActionOrderCreate, true},
		{RoleAdmin, ObjectManufacturer, ActionManufacturerList, true},
		{RoleAdmin, ObjectOption, ActionOptionDelete, true},
		{"role:unknown", ObjectProduct, ActionProductList, false},
	}

	for _, tc := range cases {
		t.Run(tc.role+"/"+tc.action, func(t *testing.T) {
			err := svc.Authorize(ctx, tc.role, tc.object, tc.action)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrForbidden)
			}
		})
	}
}

func TestAuthorizeRejectsBlankInput(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))
	ctx := context.Background()

	assert.ErrorIs(t, svc.Authorize(ctx, " ", ObjectProduct, ActionProductList), ErrInvalidRole)
	assert.ErrorIs(t, svc.Authorize(ctx, RoleAdmin, "", ActionProductList), ErrInvalidObject)
	assert.ErrorIs(t, svc.Authorize(ctx, RoleAdmin, ObjectProduct, ""), ErrInvalidAction)
}

func TestStoredPolicySurvivesReload(t *testing.T) {
	db := setupTestDB(t)

	enforcer, err := NewEnforcer(db)
	require.NoError(t, err)
	removed, err := enforcer.RemovePolicy(RoleAnonymous, ObjectProduct, ActionProductDelete)
	require.NoError(t, err)
	require.True(t, removed)

	svc := newTestService(t, db)
	err = svc.Authorize(context.Background(), RoleAnonymous, ObjectProduct, ActionProductDelete)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.NoError(t, svc.Authorize(context.Background(), RoleAnonymous, ObjectProduct, ActionProductList))
}
