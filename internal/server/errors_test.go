package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/rfernando-oulu/eComSync/internal/authorization"
	manufacturerdomain "github.com/rfernando-oulu/eComSync/internal/manufacturer/domain"
	optiondomain "github.com/rfernando-oulu/eComSync/internal/option/domain"
	orderdomain "github.com/rfernando-oulu/eComSync/internal/order/domain"
	productdomain "github.com/rfernando-oulu/eComSync/internal/product/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMapErrorStatus(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"nil", nil, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"validation", newValidationError("name", "required", "missing"), http.StatusBadRequest},
		{"invalid id", ErrInvalidID, http.StatusBadRequest},
		{"manufacturer name", manufacturerdomain.ErrInvalidName, http.StatusBadRequest},
		{"order email", orderdomain.ErrInvalidEmail, http.StatusBadRequest},
		{"sku exists", productdomain.ErrSKUExists, http.StatusBadRequest},
		{"media type", ErrUnsupportedMediaType, http.StatusUnsupportedMediaType},
		{"forbidden", authorization.ErrForbidden, http.StatusForbidden},
		{"sku conflict", productdomain.ErrSKUConflict, http.StatusConflict},
		{"product not found", productdomain.ErrNotFound, http.StatusNotFound},
		{"record not found", gorm.ErrRecordNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("get: %w", optiondomain.ErrNotFound), http.StatusNotFound},
		{"method", ErrMethodNotAllowed, http.StatusMethodNotAllowed},
		{"rate limited", ErrRateLimited, http.StatusTooManyRequests},
		{"unavailable", ErrServiceUnavailable, http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, _ := mapError(tc.err)
			assert.Equal(t, tc.status, status)
		})
	}
}

func TestMapErrorDerivesFieldFromCode(t *testing.T) {
	_, payload := mapError(productdomain.ErrUnknownManufacturer)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "manufacturer_id", payload.Errors[0].Field)
	assert.Equal(t, "invalid_manufacturer_id", payload.Errors[0].Code)
	assert.Equal(t, "manufacturer does not exist", payload.Errors[0].Message)

	_, payload = mapError(productdomain.ErrInvalidSKU)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "sku", payload.Errors[0].Field)
	assert.Equal(t, "invalid sku", payload.Errors[0].Message)
}

func TestNotFoundMessages(t *testing.T) {
	_, payload := mapError(manufacturerdomain.ErrNotFound)
	assert.Equal(t, "Manufacturer not found", payload.Message)

	_, payload = mapError(productdomain.ErrNotFound)
	assert.Equal(t, "Product not found", payload.Message)
}

func TestNewErrorResponseCollectsMessages(t *testing.T) {
	resp := newErrorResponse(errorPayload{
		Title:   "Invalid request",
		Message: "top",
		Errors:  []ValidationError{{Field: "name", Message: "missing required field: 'name'"}},
	})

	require.NotNil(t, resp.Error)
	assert.Equal(t, "Invalid request", resp.Error.Message)
	assert.Equal(t, []string{"top", "missing required field: 'name'"}, resp.Error.Messages)
	assert.Len(t, resp.Errors, 1)
}

func TestClassifyErrorForLog(t *testing.T) {
	typ, code := classifyErrorForLog(productdomain.ErrSKUExists)
	assert.Equal(t, "validation_error", typ)
	assert.Equal(t, "sku_exists", code)

	typ, code = classifyErrorForLog(ErrRateLimited)
	assert.Equal(t, "rate_limited", typ)
	assert.Equal(t, "rate_limited", code)
}
