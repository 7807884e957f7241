package tracing

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

func TestSafeAttributesDropsCredentials(t *testing.T) {
	attrs := SafeAttributes(
		attribute.String("http.route", "/api/option/"),
		attribute.String("access_key", "secret"),
	)
	require.Len(t, attrs, 1)
	assert.Equal(t, attribute.Key("http.route"), attrs[0].Key)
}

func TestSafeErrorBoundsMessage(t *testing.T) {
	assert.Nil(t, SafeError(nil))

	err := SafeError(errors.New(strings.Repeat("x", 300) + "\nline"))
	assert.Len(t, err.Error(), 256)
	assert.NotContains(t, err.Error(), "\n")
}

func TestNewProviderDisabledIsNoop(t *testing.T) {
	provider, err := NewProvider(nil, Config{Enabled: false}, zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, provider)
}

func TestNewExporterRejectsUnknownProtocol(t *testing.T) {
	_, err := newExporter(t.Context(), "carrier-pigeon", "")
	assert.Error(t, err)
}

func newRecordingRouter(t *testing.T) (*gin.Engine, *tracetest.SpanRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := tracetest.NewSpanRecorder()
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/product/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.DELETE("/api/option/:id", func(c *gin.Context) {
		_ = c.Error(errors.New("database is locked"))
		c.Status(http.StatusInternalServerError)
	})
	return r, recorder
}

func spanAttr(span sdktrace.ReadOnlySpan, key string) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestGinMiddlewareNamesSpanAfterRoute(t *testing.T) {
	r, recorder := newRecordingRouter(t)

	for _, path := range []string{"/api/product/1", "/api/product/2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	for i, span := range spans {
		assert.Equal(t, "HTTP GET /api/product/:id", span.Name())
		resource, ok := spanAttr(span, "catalog.resource")
		require.True(t, ok)
		assert.Equal(t, "product", resource.AsString())
		id, ok := spanAttr(span, "catalog.id")
		require.True(t, ok)
		assert.Equal(t, []string{"1", "2"}[i], id.AsString())
	}
}

func TestGinMiddlewareSkipsHealthAndMarksServerErrors(t *testing.T) {
	r, recorder := newRecordingRouter(t)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Empty(t, recorder.Ended())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/api/option/3", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "HTTP DELETE /api/option/:id", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	require.Len(t, spans[0].Events(), 1)

	assert.Equal(t, "HTTP GET unmatched", spans[1].Name())
	assert.Equal(t, codes.Unset, spans[1].Status().Code)
}

func TestCatalogResource(t *testing.T) {
	assert.Equal(t, "product", catalogResource("/api/product/:id"))
	assert.Equal(t, "order", catalogResource("/api/order/"))
	assert.Empty(t, catalogResource("/api/"))
	assert.Empty(t, catalogResource("unmatched"))
}
