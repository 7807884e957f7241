package authorization

import (
	"context"
	_ "embed"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

const (
	RoleAdmin     = "role:admin"
	RoleAnonymous = "role:anonymous"
)

const (
	ObjectManufacturer = "manufacturer"
	ObjectProduct      = "product"
	ObjectOption       = "option"
	ObjectOrder        = "order"
)

const (
	ActionManufacturerList   = "manufacturer.list"
	ActionManufacturerView   = "manufacturer.view"
	ActionManufacturerCreate = "manufacturer.create"
	ActionManufacturerUpdate = "manufacturer.update"
	ActionManufacturerDelete = "manufacturer.delete"

	ActionProductList   = "product.list"
	ActionProductView   = "product.view"
	ActionProductCreate = "product.create"
	ActionProductUpdate = "product.update"
	ActionProductDelete = "product.delete"

	ActionOptionList   = "option.list"
	ActionOptionCreate = "option.create"
	ActionOptionUpdate = "option.update"
	ActionOptionDelete = "option.delete"

	ActionOrderList   = "order.list"
	ActionOrderCreate = "order.create"
)

type Params struct {
	fx.In

	Log      *zap.Logger
	Enforcer *casbin.SyncedEnforcer
}

type ServiceImpl struct {
	log      *zap.Logger
	enforcer *casbin.SyncedEnforcer
}

// NewEnforcer loads the route policy from the casbin_rule table, seeding the
// default policy when the table is empty.
func NewEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	enforcer.EnableAutoBuildRoleLinks(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	if err := enforcer.BuildRoleLinks(); err != nil {
		return nil, err
	}
	return enforcer, nil
}

func NewService(p Params) Service {
	return &ServiceImpl{
		log:      p.Log.Named("authorization.service"),
		enforcer: p.Enforcer,
	}
}

func (s *ServiceImpl) Authorize(ctx context.Context, role string, object string, action string) error {
	role = strings.TrimSpace(role)
	if role == "" {
		return ErrInvalidRole
	}
	object = strings.TrimSpace(object)
	if object == "" {
		return ErrInvalidObject
	}
	action = strings.TrimSpace(action)
	if action == "" {
		return ErrInvalidAction
	}

	allowed, err := s.enforcer.Enforce(role, object, action)
	if err != nil {
		return err
	}
	if !allowed {
		s.log.Debug("authorization denied",
			zap.String("role", role),
			zap.String("object", object),
			zap.String("action", action),
		)
		return ErrForbidden
	}
	return nil
}

// DefaultPolicies is the route policy installed on an empty policy table.
func DefaultPolicies() [][]string {
	return [][]string{
		{RoleAdmin, "*", "*"},

		{RoleAnonymous, ObjectManufacturer, ActionManufacturerView},
		{RoleAnonymous, ObjectManufacturer, ActionManufacturerCreate},
		{RoleAnonymous, ObjectManufacturer, ActionManufacturerUpdate},
		{RoleAnonymous, ObjectManufacturer, ActionManufacturerDelete},

		{RoleAnonymous, ObjectProduct, ActionProductList},
		{RoleAnonymous, ObjectProduct, ActionProductView},
		{RoleAnonymous, ObjectProduct, ActionProductCreate},
		{RoleAnonymous, ObjectProduct, ActionProductUpdate},
		{RoleAnonymous, ObjectProduct, ActionProductDelete},

		{RoleAnonymous, ObjectOption, ActionOptionUpdate},

		{RoleAnonymous, ObjectOrder, ActionOrderList},
		{RoleAnonymous, ObjectOrder, ActionOrderCreate},
	}
}

func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	existing, err := enforcer.GetPolicy()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	_, err = enforcer.AddPolicies(DefaultPolicies())
	return err
}
