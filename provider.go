package laminar

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

// ErrNilConfig is returned when a nil Config is passed to a constructor.
var ErrNilConfig = errors.New("laminar: config is nil")

// ErrServiceNameRequired is returned when ServiceName is empty.
var ErrServiceNameRequired = errors.New("laminar: service name is required")

// providerOptions holds resolved options for NewTracerProvider.
type providerOptions struct {
	protocol       string
	exporterType   string
	serviceName    string
	serviceVersion string
	environment    string
}

// ProviderOption configures NewTracerProvider.
type ProviderOption func(*providerOptions)

// WithProtocol selects the OTLP transport protocol: ProtocolGRPC (default)
// or ProtocolHTTP.
func WithProtocol(protocol string) ProviderOption {
	return func(o *providerOptions) { o.protocol = protocol }
}

// WithExporterType selects the exporter: ExporterOTLP (default),
// ExporterConsole for pretty-printed stdout output, or ExporterNone.
func WithExporterType(t string) ProviderOption {
	return func(o *providerOptions) { o.exporterType = t }
}

// WithServiceName overrides Config.ServiceName for this provider.
func WithServiceName(name string) ProviderOption {
	return func(o *providerOptions) { o.serviceName = name }
}

// WithServiceVersion sets the service.version resource attribute.
func WithServiceVersion(version string) ProviderOption {
	return func(o *providerOptions) { o.serviceVersion = version }
}

// WithEnvironment sets the deployment.environment resource attribute.
func WithEnvironment(env string) ProviderOption {
	return func(o *providerOptions) { o.environment = env }
}

// NewTracerProvider builds a TracerProvider that exports spans to the
// configured Laminar deployment with Bearer authentication.
//
// The provider is returned to the caller rather than installed globally;
// callers own its lifecycle and must call Shutdown (or at least ForceFlush)
// before exit so batched spans are delivered.
func NewTracerProvider(ctx context.Context, cfg *Config, opts ...ProviderOption) (*sdktrace.TracerProvider, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	resolved := &providerOptions{
		protocol:     ProtocolGRPC,
		exporterType: ExporterOTLP,
		serviceName:  cfg.ServiceName,
	}
	for _, opt := range opts {
		opt(resolved)
	}

	if resolved.serviceName == "" {
		return nil, ErrServiceNameRequired
	}

	// The OTLP exporters authenticate every request; a missing key is a
	// configuration error, caught before any network call happens.
	if normalizeExporterType(resolved.exporterType) == ExporterOTLP {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	res, err := buildResource(ctx, resolved)
	if err != nil {
		return nil, err
	}

	exporter, err := buildTraceExporter(ctx, cfg, resolved)
	if err != nil {
		return nil, fmt.Errorf("build trace exporter: %w", err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter),
	), nil
}

// buildResource creates the OTel resource describing the emitting service.
func buildResource(ctx context.Context, opts *providerOptions) (*resource.Resource, error) {
	res, err := resource.New(ctx,
		resource.WithSchemaURL(semconv.SchemaURL),
		resource.WithAttributes(
			semconv.ServiceName(opts.serviceName),
			semconv.ServiceVersion(opts.serviceVersion),
			semconv.DeploymentEnvironment(opts.environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	return res, nil
}
