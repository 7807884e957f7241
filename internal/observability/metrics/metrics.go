package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the OTLP meter provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes catalog-level instruments pushed over OTLP.
type Metrics struct {
	catalogWrites  metric.Int64Counter
	adminKeyDenied metric.Int64Counter
	throttled      metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(15*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				log.Info("shutting down meter provider")
				return provider.Shutdown(ctx)
			},
		})
	}

	log.Info("metrics initialized",
		zap.String("endpoint", cfg.ExporterEndpoint),
		zap.String("protocol", cfg.ExporterProtocol),
	)
	return provider, nil
}

// New configures the catalog instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "ecomsync"
	}
	meter := provider.Meter(name)

	catalogWrites, err := meter.Int64Counter("ecomsync_catalog_writes_total",
		metric.WithDescription("Successful create, update and delete operations per entity."))
	if err != nil {
		return nil, err
	}
	adminKeyDenied, err := meter.Int64Counter("ecomsync_admin_key_denied_total",
		metric.WithDescription("Requests refused by the admin key guard."))
	if err != nil {
		return nil, err
	}
	throttled, err := meter.Int64Counter("ecomsync_admin_key_throttled_total",
		metric.WithDescription("Admin key attempts rejected by the rate limiter."))
	if err != nil {
		return nil, err
	}

	return &Metrics{
		catalogWrites:  catalogWrites,
		adminKeyDenied: adminKeyDenied,
		throttled:      throttled,
	}, nil
}

// RecordCatalogWrite counts a committed write on entity.
func (m *Metrics) RecordCatalogWrite(ctx context.Context, entity, operation string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("entity", strings.TrimSpace(entity)),
		attribute.String("operation", strings.TrimSpace(operation)),
	)
	m.catalogWrites.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func (m *Metrics) RecordAdminKeyDenied(ctx context.Context, object, reason string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("object", strings.TrimSpace(object)),
		attribute.String("reason", strings.TrimSpace(reason)),
	)
	m.adminKeyDenied.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func (m *Metrics) RecordThrottled(ctx context.Context, object string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("object", strings.TrimSpace(object)))
	m.throttled.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(protocol)) {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{otlpmetrichttp.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"entity":    {},
	"operation": {},
	"object":    {},
	"reason":    {},
}

// FilterAttributes strips labels outside the allow list to keep cardinality bounded.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
