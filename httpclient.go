package laminar

import (
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
)

// clientConfig holds configuration for HTTP client creation.
type clientConfig struct {
	timeout        time.Duration
	dialTimeout    time.Duration
	tracerProvider trace.TracerProvider
}

// ClientOption configures an HTTP client.
type ClientOption func(*clientConfig)

// WithClientTimeout sets the request timeout for the client.
func WithClientTimeout(d time.Duration) ClientOption {
	return func(c *clientConfig) { c.timeout = d }
}

// WithDialTimeout sets the timeout for dialing TCP connections.
func WithDialTimeout(d time.Duration) ClientOption {
	return func(c *clientConfig) { c.dialTimeout = d }
}

// WithTracerProvider sets the provider used to trace outgoing requests.
// Falls back to the global provider when unset.
func WithTracerProvider(tp trace.TracerProvider) ClientOption {
	return func(c *clientConfig) { c.tracerProvider = tp }
}

// NewHTTPClient creates an http.Client whose transport traces outgoing
// requests. Request timeouts are the client's own responsibility; callers
// that probe endpoints should always set one.
//
// Usage:
//
//	client := laminar.NewHTTPClient(
//	    laminar.WithClientTimeout(15 * time.Second),
//	)
func NewHTTPClient(opts ...ClientOption) *http.Client {
	config := &clientConfig{}
	for _, opt := range opts {
		opt(config)
	}

	var transport http.RoundTripper = http.DefaultTransport
	if base, ok := http.DefaultTransport.(*http.Transport); ok {
		cloned := base.Clone()
		if config.dialTimeout > 0 {
			cloned.DialContext = (&net.Dialer{
				Timeout:   config.dialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext
		}
		transport = cloned
	}

	var otelOpts []otelhttp.Option
	if config.tracerProvider != nil {
		otelOpts = append(otelOpts, otelhttp.WithTracerProvider(config.tracerProvider))
	}

	return &http.Client{
		Transport: otelhttp.NewTransport(transport, otelOpts...),
		Timeout:   config.timeout,
	}
}
