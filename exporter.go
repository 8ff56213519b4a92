package laminar

import (
	"context"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Transport protocols for OTLP trace export.
const (
	ProtocolGRPC = "grpc"
	ProtocolHTTP = "http/protobuf"
)

// Exporter types.
const (
	ExporterOTLP    = "otlp"
	ExporterConsole = "console"
	ExporterNone    = "none"
)

// nopSpanExporter is a no-op span exporter.
type nopSpanExporter struct{}

func (nopSpanExporter) ExportSpans(_ context.Context, _ []sdktrace.ReadOnlySpan) error { return nil }
func (nopSpanExporter) Shutdown(_ context.Context) error                               { return nil }

// buildTraceExporter creates a span exporter from the config and resolved
// provider options.
func buildTraceExporter(ctx context.Context, cfg *Config, opts *providerOptions) (sdktrace.SpanExporter, error) {
	switch normalizeExporterType(opts.exporterType) {
	case ExporterConsole:
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	case ExporterNone:
		return nopSpanExporter{}, nil
	default:
		if opts.protocol == ProtocolHTTP || opts.protocol == "http" {
			return buildHTTPTraceExporter(ctx, cfg)
		}

		return buildGRPCTraceExporter(ctx, cfg)
	}
}

func buildGRPCTraceExporter(ctx context.Context, cfg *Config) (sdktrace.SpanExporter, error) {
	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(cfg.GRPCTarget()),
		otlptracegrpc.WithHeaders(cfg.AuthHeaders()),
		otlptracegrpc.WithTimeout(cfg.RequestTimeout()),
	}
	if cfg.IsInsecure() {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}

	return otlptrace.New(ctx, otlptracegrpc.NewClient(opts...))
}

func buildHTTPTraceExporter(ctx context.Context, cfg *Config) (sdktrace.SpanExporter, error) {
	opts := []otlptracehttp.Option{
		otlptracehttp.WithHeaders(cfg.AuthHeaders()),
		otlptracehttp.WithTimeout(cfg.RequestTimeout()),
	}

	endpoint := cfg.HTTPEndpoint
	if endpoint == "" {
		endpoint = DefaultHTTPEndpoint
	}
	if host, path := splitEndpointURL(endpoint); host != "" {
		opts = append(opts, otlptracehttp.WithEndpoint(host))
		if path != "" && path != "/" {
			opts = append(opts, otlptracehttp.WithURLPath(strings.TrimRight(path, "/")+"/v1/traces"))
		}
	} else {
		opts = append(opts, otlptracehttp.WithEndpoint(endpoint))
	}

	if cfg.IsInsecure() {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	return otlptrace.New(ctx, otlptracehttp.NewClient(opts...))
}

func normalizeExporterType(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "":
		return ExporterOTLP
	case "stdout":
		return ExporterConsole
	case "nop", "noop":
		return ExporterNone
	default:
		return v
	}
}

// splitEndpointURL splits a full URL into host and path. Returns empty
// strings if the value is not an http(s) URL.
func splitEndpointURL(raw string) (host string, path string) {
	if raw == "" {
		return "", ""
	}
	parsed, err := url.Parse(raw)
	if err != nil || !isHTTPScheme(parsed.Scheme) {
		return "", ""
	}

	return parsed.Host, parsed.Path
}

func isHTTPScheme(scheme string) bool {
	switch strings.ToLower(scheme) {
	case "http", "https":
		return true
	default:
		return false
	}
}
