package laminar

import (
	"errors"
	"strings"
	"time"
)

// Default endpoints point at the OrbitronAI production deployment.
// Override via environment variables for staging or PSC setups.
const (
	DefaultBaseURL      = "https://laminar.orbitronai.com"
	DefaultGRPCEndpoint = "otlp-grpc.laminar.orbitronai.com:443"
	DefaultHTTPEndpoint = "https://otlp-http.laminar.orbitronai.com"
)

// ErrAPIKeyMissing is returned when an operation requires a project API key
// and none is configured.
var ErrAPIKeyMissing = errors.New("laminar: LAMINAR_API_KEY is not set")

// Config holds the connection settings for a Laminar deployment.
// All fields can be sourced from the environment; every value except
// APIKey has a documented default.
type Config struct {
	// APIKey is the Laminar project API key. Mandatory for trace export;
	// reachability-only probing works without it.
	// Avoid logging this value.
	APIKey string `yaml:"apiKey" env:"LAMINAR_API_KEY"`

	// BaseURL is the Laminar UI base URL.
	BaseURL string `yaml:"baseURL" env:"LAMINAR_BASE_URL" default:"https://laminar.orbitronai.com"`

	// GRPCEndpoint is the OTLP/gRPC ingestion endpoint as host:port.
	// gRPC uses port 443 (standard HTTPS), NOT 8443. A scheme prefix is
	// tolerated and stripped, since gRPC targets must not carry one.
	GRPCEndpoint string `yaml:"grpcEndpoint" env:"LAMINAR_OTLP_GRPC_URL" default:"otlp-grpc.laminar.orbitronai.com:443"`

	// HTTPEndpoint is the OTLP/HTTP ingestion base URL. Traces are posted
	// to <HTTPEndpoint>/v1/traces.
	HTTPEndpoint string `yaml:"httpEndpoint" env:"LAMINAR_OTLP_HTTP_URL" default:"https://otlp-http.laminar.orbitronai.com"`

	// ServiceName identifies the emitting service in traces.
	ServiceName string `yaml:"serviceName" env:"OTEL_SERVICE_NAME" default:"laminar-go"`

	// Timeout bounds each network operation (HTTP requests, exporter calls,
	// gRPC connection establishment).
	Timeout time.Duration `yaml:"timeout" env:"LAMINAR_TIMEOUT" default:"15s"`

	// Insecure disables TLS. Production endpoints are TLS, so this is
	// only useful against local collectors.
	Insecure *bool `yaml:"insecure" env:"LAMINAR_INSECURE" default:"false"`
}

// Validate checks that the settings required for authenticated operations
// are present.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrAPIKeyMissing
	}

	return nil
}

// IsInsecure returns true if TLS is disabled. Defaults to false if unset.
func (c *Config) IsInsecure() bool {
	return c.Insecure != nil && *c.Insecure
}

// GRPCTarget returns the gRPC endpoint in host:port form, stripping any
// scheme prefix or path the operator may have carried over from a URL.
func (c *Config) GRPCTarget() string {
	target := c.GRPCEndpoint
	if target == "" {
		target = DefaultGRPCEndpoint
	}
	if i := strings.Index(target, "://"); i >= 0 {
		target = target[i+3:]
	}
	if i := strings.IndexByte(target, '/'); i >= 0 {
		target = target[:i]
	}

	return target
}

// TracesURL returns the full OTLP/HTTP trace ingestion URL.
func (c *Config) TracesURL() string {
	endpoint := c.HTTPEndpoint
	if endpoint == "" {
		endpoint = DefaultHTTPEndpoint
	}

	return strings.TrimRight(endpoint, "/") + "/v1/traces"
}

// AuthHeaders returns the headers that authenticate OTLP requests.
func (c *Config) AuthHeaders() map[string]string {
	return map[string]string{"authorization": "Bearer " + c.APIKey}
}

// RequestTimeout returns the configured timeout, falling back to 15s.
func (c *Config) RequestTimeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}

	return 15 * time.Second
}

// boolPtr returns a pointer to the given boolean value.
// It is useful for initializing config fields.
func boolPtr(v bool) *bool { return &v }
