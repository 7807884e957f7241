package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionRoutesRequireAdminKey(t *testing.T) {
	env := newTestEnv(t)
	env.seedOption(t, 1, "Polarized")

	cases := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/api/option/", nil},
		{http.MethodPost, "/api/option/", map[string]any{"name": "Gradient"}},
		{http.MethodDelete, "/api/option/1", nil},
	}

	for _, tc := range cases {
		t.Run(tc.method, func(t *testing.T) {
			resp := env.request(t, tc.method, tc.path, tc.body, nil)
			assert.Equal(t, http.StatusForbidden, resp.Code)

			resp = env.request(t, tc.method, tc.path, tc.body, map[string]string{"access-Key": "wrong"})
			assert.Equal(t, http.StatusForbidden, resp.Code)
		})
	}

	assert.Equal(t, int64(1), env.count(t, "options", ""))
}

func TestOptionLifecycleWithAdminKey(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/option/", map[string]any{
		"name":  "Gradient",
		"image": "/image/options/gradient.jpg",
	}, env.admin())
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	body := decodeBody(t, resp)
	assert.Equal(t, "Option Added Successfully", body["message"])
	id := int64(body["id"].(float64))
	assert.Equal(t, "/api/option/1", resp.Header().Get("Location"))

	resp = env.request(t, http.MethodGet, "/api/option/", nil, env.admin())
	require.Equal(t, http.StatusOK, resp.Code)
	options := decodeBody(t, resp)["options"].([]any)
	require.Len(t, options, 1)
	assert.Equal(t, "Gradient", options[0].(map[string]any)["name"])

	resp = env.request(t, http.MethodDelete, optionCollectionPath+"1", nil, env.admin())
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, "Option Deleted Successfully", decodeBody(t, resp)["message"])
	assert.Zero(t, env.count(t, "options", "id = ?", id))

	resp = env.request(t, http.MethodDelete, optionCollectionPath+"1", nil, env.admin())
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestUpdateOptionIsPartial(t *testing.T) {
	env := newTestEnv(t)
	env.seedOption(t, 1, "Polarized")

	resp := env.request(t, http.MethodPut, "/api/option/1", map[string]any{"image_update": "/image/options/new.jpg"}, nil)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, "Option Updated Successfully", decodeBody(t, resp)["message"])

	resp = env.request(t, http.MethodGet, "/api/option/", nil, env.admin())
	option := decodeBody(t, resp)["options"].([]any)[0].(map[string]any)
	assert.Equal(t, "Polarized", option["name"])
	assert.Equal(t, "/image/options/new.jpg", option["image"])

	resp = env.request(t, http.MethodPut, "/api/option/1", map[string]any{"name_update": "  "}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = env.request(t, http.MethodPut, "/api/option/5", map[string]any{"name_update": "x"}, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = env.request(t, http.MethodPut, "/api/option/x", map[string]any{"name_update": "x"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestDeleteOptionDetachesProducts(t *testing.T) {
	env := newTestEnv(t)
	env.seedManufacturer(t, 1, "Ray Ban")
	env.seedOption(t, 1, "Polarized")
	env.seedProduct(t, 1, 1, "RBX335700000006B", 1)

	env.seedOption(t, 2, "Mirror")
	env.seedProduct(t, 2, 1, "RBX335700000007B", 1, 2)

	resp := env.request(t, http.MethodDelete, "/api/option/1", nil, env.admin())
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Zero(t, env.count(t, "options", "id = ?", 1))
	assert.Zero(t, env.count(t, "product_options", "option_id = ?", 1))
	assert.Equal(t, int64(1), env.count(t, "product_options", "option_id = ?", 2))
	assert.Equal(t, int64(2), env.count(t, "products", ""))
}
