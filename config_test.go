package laminar

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultGRPCEndpoint, cfg.GRPCEndpoint)
	assert.Equal(t, DefaultHTTPEndpoint, cfg.HTTPEndpoint)
	assert.Equal(t, "laminar-go", cfg.ServiceName)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.False(t, cfg.IsInsecure())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("LAMINAR_API_KEY", "secret")
	t.Setenv("LAMINAR_BASE_URL", "https://laminar.staging.orbitronai.com")
	t.Setenv("LAMINAR_OTLP_GRPC_URL", "otlp-grpc.staging.orbitronai.com:443")
	t.Setenv("LAMINAR_OTLP_HTTP_URL", "https://otlp-http.staging.orbitronai.com")
	t.Setenv("LAMINAR_TIMEOUT", "30s")
	t.Setenv("OTEL_SERVICE_NAME", "staging-check")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, "https://laminar.staging.orbitronai.com", cfg.BaseURL)
	assert.Equal(t, "otlp-grpc.staging.orbitronai.com:443", cfg.GRPCEndpoint)
	assert.Equal(t, "https://otlp-http.staging.orbitronai.com", cfg.HTTPEndpoint)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "staging-check", cfg.ServiceName)
}

func TestFromEnv_TrimsAPIKey(t *testing.T) {
	t.Setenv("LAMINAR_API_KEY", "  secret \n")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.APIKey)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	assert.ErrorIs(t, cfg.Validate(), ErrAPIKeyMissing)

	cfg.APIKey = "   "
	assert.ErrorIs(t, cfg.Validate(), ErrAPIKeyMissing)

	cfg.APIKey = "key"
	assert.NoError(t, cfg.Validate())
}

func TestGRPCTarget(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		expected string
	}{
		{"host port form", "otlp-grpc.laminar.orbitronai.com:443", "otlp-grpc.laminar.orbitronai.com:443"},
		{"https scheme stripped", "https://otlp-grpc.laminar.orbitronai.com:443", "otlp-grpc.laminar.orbitronai.com:443"},
		{"path stripped", "https://otlp-grpc.laminar.orbitronai.com:443/ingest", "otlp-grpc.laminar.orbitronai.com:443"},
		{"empty falls back to default", "", DefaultGRPCEndpoint},
		{"local collector", "localhost:4317", "localhost:4317"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{GRPCEndpoint: tt.endpoint}
			assert.Equal(t, tt.expected, cfg.GRPCTarget())
		})
	}
}

func TestTracesURL(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		expected string
	}{
		{"plain", "https://otlp-http.laminar.orbitronai.com", "https://otlp-http.laminar.orbitronai.com/v1/traces"},
		{"trailing slash", "https://otlp-http.laminar.orbitronai.com/", "https://otlp-http.laminar.orbitronai.com/v1/traces"},
		{"empty falls back to default", "", DefaultHTTPEndpoint + "/v1/traces"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{HTTPEndpoint: tt.endpoint}
			assert.Equal(t, tt.expected, cfg.TracesURL())
		})
	}
}

func TestAuthHeaders(t *testing.T) {
	cfg := &Config{APIKey: "secret"}
	assert.Equal(t, map[string]string{"authorization": "Bearer secret"}, cfg.AuthHeaders())
}

func TestRequestTimeout(t *testing.T) {
	assert.Equal(t, 15*time.Second, (&Config{}).RequestTimeout())
	assert.Equal(t, time.Second, (&Config{Timeout: time.Second}).RequestTimeout())
}

func TestIsInsecure(t *testing.T) {
	assert.False(t, (&Config{}).IsInsecure())
	assert.False(t, (&Config{Insecure: boolPtr(false)}).IsInsecure())
	assert.True(t, (&Config{Insecure: boolPtr(true)}).IsInsecure())
}

func TestLoadConfig(t *testing.T) {
	content := []byte(`
apiKey: "file-key"
baseURL: "https://laminar.internal.example.com"
serviceName: "file-service"
timeout: 20s
`)
	tmpFile := filepath.Join(t.TempDir(), "laminar.yaml")
	require.NoError(t, os.WriteFile(tmpFile, content, 0o644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, "https://laminar.internal.example.com", cfg.BaseURL)
	assert.Equal(t, "file-service", cfg.ServiceName)
	assert.Equal(t, 20*time.Second, cfg.Timeout)

	// Environment overrides file values.
	t.Setenv("OTEL_SERVICE_NAME", "override-service")
	cfg, err = LoadConfig(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, "override-service", cfg.ServiceName)
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
apiKey: "bytes-key"
insecure: true
`))
	require.NoError(t, err)
	assert.Equal(t, "bytes-key", cfg.APIKey)
	assert.True(t, cfg.IsInsecure())

	// Defaults still apply to unset fields.
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
}
