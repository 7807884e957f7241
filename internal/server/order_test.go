package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndListOrders(t *testing.T) {
	env := newTestEnv(t)
	env.seedManufacturer(t, 1, "Ray Ban")
	env.seedProduct(t, 1, 1, "RBX335700000006B")

	resp := env.request(t, http.MethodPost, "/api/order/", map[string]any{
		"firstname":         "Ada",
		"lastname":          "Lovelace",
		"email":             "ada@example.com",
		"telephone":         "0401234567",
		"product_id":        "1",
		"payment_address_1": "Yliopistokatu 9",
		"payment_city":      "Oulu",
		"payment_postcode":  "90570",
		"payment_country":   "Finland",
		"total":             "39.55",
		"date_added":        "2019-02-27",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	body := decodeBody(t, resp)
	assert.Equal(t, "Order Added Successfully", body["message"])
	assert.EqualValues(t, 1, body["id"])
	assert.Empty(t, resp.Header().Get("Location"))

	resp = env.request(t, http.MethodGet, "/api/order/", nil, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	orders := decodeBody(t, resp)["orders"].([]any)
	require.Len(t, orders, 1)

	o := orders[0].(map[string]any)
	assert.Equal(t, "Ada", o["firstname"])
	assert.EqualValues(t, 1, o["product_id"])
	assert.Equal(t, "Oulu", o["payment_city"])
	assert.InDelta(t, 39.55, o["total"], 1e-9)
	assert.Equal(t, "2019-02-27T00:00:00Z", o["date_added"])

	resp = env.request(t, http.MethodGet, "/api/order/?form=short", nil, nil)
	o = decodeBody(t, resp)["orders"].([]any)[0].(map[string]any)
	assert.Equal(t, "ada@example.com", o["email"])
	assert.NotContains(t, o, "product_id")
	assert.NotContains(t, o, "total")
}

func TestCreateOrderDefaultsDateToNow(t *testing.T) {
	env := newTestEnv(t)
	env.seedManufacturer(t, 1, "Ray Ban")
	env.seedProduct(t, 1, 1, "RBX335700000006B")

	resp := env.request(t, http.MethodPost, "/api/order/", map[string]any{
		"firstname":  "Ada",
		"email":      "ada@example.com",
		"product_id": 1,
		"total":      10,
	}, nil)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	resp = env.request(t, http.MethodGet, "/api/order/", nil, nil)
	o := decodeBody(t, resp)["orders"].([]any)[0].(map[string]any)
	assert.Equal(t, "2024-05-01T12:00:00Z", o["date_added"])
}

func TestCreateOrderValidation(t *testing.T) {
	env := newTestEnv(t)
	env.seedManufacturer(t, 1, "Ray Ban")
	env.seedProduct(t, 1, 1, "RBX335700000006B")

	resp := env.request(t, http.MethodPost, "/api/order/", map[string]any{
		"email":      "ada@example.com",
		"product_id": 1,
		"total":      10,
	}, nil)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	errs := decodeBody(t, resp)["errors"].([]any)
	assert.Equal(t, "firstname", errs[0].(map[string]any)["field"])

	resp = env.request(t, http.MethodPost, "/api/order/", map[string]any{
		"firstname":  "Ada",
		"email":      "ada@example.com",
		"product_id": 8,
		"total":      10,
	}, nil)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	errs = decodeBody(t, resp)["errors"].([]any)
	assert.Equal(t, "product_id", errs[0].(map[string]any)["field"])
	assert.Equal(t, "product does not exist", errs[0].(map[string]any)["message"])

	resp = env.request(t, http.MethodPost, "/api/order/", map[string]any{
		"firstname":  "Ada",
		"email":      "ada@example.com",
		"product_id": 1,
		"total":      -1,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	assert.Zero(t, env.count(t, "orders", ""))
}
