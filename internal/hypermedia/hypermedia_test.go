package hypermedia

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type body struct {
	Meta
	Items []string `json:"items"`
}

func TestEmptyMetaOmitsBlocks(t *testing.T) {
	raw, err := json.Marshal(body{Items: []string{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, string(raw))
}

func TestControls(t *testing.T) {
	var m Meta
	m.AddNamespace(StorageNamespace, LinkRelations)
	m.AddControl("self", "/api/product/", Control{Href: "ignored"})
	m.AddControlPost("storage:add-product", "Add a product", "/api/product/", ObjectSchema("name"))
	m.AddControlPut("Edit this product", "/api/product/1", nil)
	m.AddControlDelete("Delete this product", "/api/product/1")

	assert.Equal(t, "/api/product/", m.Controls["self"].Href)
	assert.Equal(t, http.MethodPost, m.Controls["storage:add-product"].Method)
	assert.Equal(t, JSONEncoding, m.Controls["storage:add-product"].Encoding)
	assert.Equal(t, http.MethodPut, m.Controls["edit"].Method)
	assert.Equal(t, http.MethodDelete, m.Controls[DefaultDeleteRelation].Method)
	assert.Equal(t, LinkRelations, m.Namespaces[StorageNamespace].Name)
}

func TestDeleteRelationIsConfigurable(t *testing.T) {
	m := NewMeta("storage:delete")
	m.AddControlDelete("Delete", "/api/option/3")
	_, ok := m.Controls["storage:delete"]
	assert.True(t, ok)
}

func TestAddErrorMarshalsMasonBlock(t *testing.T) {
	var m Meta
	m.AddError("Not found", "No product with id 9")

	raw, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"@error":{"@message":"Not found","@messages":["No product with id 9"]}}`, string(raw))
}

func TestManufacturerControls(t *testing.T) {
	var m Meta
	m.AddManufacturerCollection("/api/manufacturer/")
	m.AddManufacturer("/api/manufacturer/1")

	item := m.Controls[RelManufacturer]
	assert.Equal(t, "View a manufacturer", item.Title)
	assert.Equal(t, http.MethodGet, item.Method)
	require.NotNil(t, item.Schema)
	assert.Equal(t, []string{"name", "image", "description"}, item.Schema.Required)
	assert.Len(t, item.Schema.Properties, 3)
	assert.Equal(t, "/api/manufacturer/", m.Controls[RelManufacturerAll].Href)
}
