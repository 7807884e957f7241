package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	apikeydomain "github.com/rfernando-oulu/eComSync/internal/apikey/domain"
	apikeyrepository "github.com/rfernando-oulu/eComSync/internal/apikey/repository"
	apikeyservice "github.com/rfernando-oulu/eComSync/internal/apikey/service"
	"github.com/rfernando-oulu/eComSync/internal/authorization"
	"github.com/rfernando-oulu/eComSync/internal/clock"
	manufacturerdomain "github.com/rfernando-oulu/eComSync/internal/manufacturer/domain"
	manufacturerrepository "github.com/rfernando-oulu/eComSync/internal/manufacturer/repository"
	manufacturerservice "github.com/rfernando-oulu/eComSync/internal/manufacturer/service"
	"github.com/rfernando-oulu/eComSync/internal/migration"
	"github.com/rfernando-oulu/eComSync/internal/observability"
	obsmetrics "github.com/rfernando-oulu/eComSync/internal/observability/metrics"
	optiondomain "github.com/rfernando-oulu/eComSync/internal/option/domain"
	optionrepository "github.com/rfernando-oulu/eComSync/internal/option/repository"
	optionservice "github.com/rfernando-oulu/eComSync/internal/option/service"
	orderrepository "github.com/rfernando-oulu/eComSync/internal/order/repository"
	orderservice "github.com/rfernando-oulu/eComSync/internal/order/service"
	productdomain "github.com/rfernando-oulu/eComSync/internal/product/domain"
	productrepository "github.com/rfernando-oulu/eComSync/internal/product/repository"
	productservice "github.com/rfernando-oulu/eComSync/internal/product/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	db       *gorm.DB
	engine   *gin.Engine
	adminKey string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name)), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, migration.Run(db))

	log := zap.NewNop()
	clk := clock.NewFakeClock(testNow)

	enforcer, err := authorization.NewEnforcer(db)
	require.NoError(t, err)

	httpMetrics, err := obsmetrics.NewHTTPMetricsWithRegisterer(prometheus.NewRegistry(), obsmetrics.Config{})
	require.NoError(t, err)
	engine := NewEngine(observability.Config{Environment: "test"}, httpMetrics)

	apiKeySvc := apikeyservice.New(apikeyservice.Params{DB: db, Log: log, Repo: apikeyrepository.Provide()})
	adminKey, err := apiKeySvc.GenerateMasterKey(context.Background())
	require.NoError(t, err)

	NewServer(ServerParams{
		Gin:       engine,
		APIKeySvc: apiKeySvc,
		AuthzSvc:  authorization.NewService(authorization.Params{Log: log, Enforcer: enforcer}),
		ManufacturerSvc: manufacturerservice.New(manufacturerservice.Params{
			DB:   db,
			Log:  log,
			Repo: manufacturerrepository.Provide(),
		}),
		ProductSvc: productservice.New(productservice.Params{
			DB:    db,
			Log:   log,
			Clock: clk,
			Repo:  productrepository.Provide(),
		}),
		OptionSvc: optionservice.New(optionservice.Params{
			DB:   db,
			Log:  log,
			Repo: optionrepository.Provide(),
		}),
		OrderSvc: orderservice.New(orderservice.Params{
			DB:    db,
			Log:   log,
			Clock: clk,
			Repo:  orderrepository.Provide(),
		}),
	})

	return &testEnv{db: db, engine: engine, adminKey: adminKey}
}

func (e *testEnv) request(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp := httptest.NewRecorder()
	e.engine.ServeHTTP(resp, req)
	return resp
}

func (e *testEnv) admin() map[string]string {
	return map[string]string{apikeydomain.HeaderName: e.adminKey}
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body), resp.Body.String())
	return body
}

func errorMessage(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()

	body := decodeBody(t, resp)
	block, ok := body["@error"].(map[string]any)
	require.True(t, ok, resp.Body.String())
	msg, _ := block["@message"].(string)
	return msg
}

func (e *testEnv) seedManufacturer(t *testing.T, id int64, name string) {
	t.Helper()
	require.NoError(t, e.db.Create(&manufacturerdomain.Manufacturer{
		ID:          id,
		Name:        name,
		Image:       "/image/" + strings.ToLower(strings.ReplaceAll(name, " ", "-")) + ".jpg",
		Description: name + " Sunglass Lenses",
	}).Error)
}

func (e *testEnv) seedOption(t *testing.T, id int64, name string) {
	t.Helper()
	require.NoError(t, e.db.Create(&optiondomain.Option{ID: id, Name: name, Image: "/image/options/" + strings.ToLower(name) + ".jpg"}).Error)
}

func (e *testEnv) seedProduct(t *testing.T, id, manufacturerID int64, sku string, optionIDs ...int64) {
	t.Helper()
	require.NoError(t, e.db.Create(&productdomain.Product{
		ID:             id,
		Name:           "RB3357",
		Description:    "Ray Ban RB3357 Sunglass",
		ManufacturerID: &manufacturerID,
		SKU:            sku,
		Quantity:       1000,
		Image:          "/image/products/RB3357.jpg",
		Price:          39.55,
		Width:          3,
		DateAdded:      testNow,
	}).Error)
	for _, optionID := range optionIDs {
		require.NoError(t, e.db.Create(&productdomain.ProductOption{ProductID: id, OptionID: optionID}).Error)
	}
}

func (e *testEnv) count(t *testing.T, table string, where string, args ...any) int64 {
	t.Helper()

	var n int64
	q := e.db.Table(table)
	if where != "" {
		q = q.Where(where, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

func TestHomePage(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/", nil, nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Home Page", resp.Body.String())
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "ok", decodeBody(t, resp)["status"])
}

func TestUnknownRouteReturnsNotFoundBody(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/nothing-here", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "Not found", errorMessage(t, resp))
}

func TestWrongVerbReturns405(t *testing.T) {
	env := newTestEnv(t)
	env.seedManufacturer(t, 1, "Ray Ban")

	resp := env.request(t, http.MethodPost, "/api/manufacturer/1", map[string]any{"name": "x"}, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.Code)
	assert.Equal(t, "Method not allowed", errorMessage(t, resp))

	resp = env.request(t, http.MethodPut, "/api/order/", map[string]any{}, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.Code)
}

func TestWritesRequireJSON(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/manufacturer/", nil, map[string]string{"Content-Type": "text/plain"})
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.Code)
	assert.Equal(t, "Unsupported media type", errorMessage(t, resp))

	resp = env.request(t, http.MethodPost, "/api/product/", nil, nil)
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.Code)
}

func TestMalformedJSONIsBadRequest(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/manufacturer/", `{"name":`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	body := decodeBody(t, resp)
	errs, ok := body["errors"].([]any)
	require.True(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "request", errs[0].(map[string]any)["field"])
}

func TestRequestIDIsEchoed(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/", nil, map[string]string{"X-Request-Id": "req-123"})
	assert.Equal(t, "req-123", resp.Header().Get("X-Request-Id"))
}
