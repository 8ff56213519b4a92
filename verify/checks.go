// Package verify declares the health probes that validate a Laminar
// deployment: endpoint reachability and trace submission over each
// supported transport.
package verify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials"
	grpcinsecure "google.golang.org/grpc/credentials/insecure"

	laminar "github.com/orbitronai/laminar-go"
	"github.com/orbitronai/laminar-go/probe"
)

// Report categories, in display order.
const (
	CategoryConnectivity = "Connectivity"
	CategoryExport       = "Trace Export"
)

// ConnectivityProbes returns the reachability probes in declaration order.
// None of them require an API key.
func ConnectivityProbes(cfg *laminar.Config, client *http.Client) []probe.Probe {
	return []probe.Probe{
		UIReachable(client, cfg.BaseURL),
		OTLPHTTPReachable(client, cfg.TracesURL()),
		OTLPGRPCReachable(cfg.GRPCTarget(), cfg.IsInsecure()),
	}
}

// ExportProbes returns the trace-submission probes in declaration order.
// All of them require cfg.APIKey.
func ExportProbes(cfg *laminar.Config) []probe.Probe {
	return []probe.Probe{
		SDKExport(cfg),
		GRPCExport(cfg),
		HTTPExport(cfg),
	}
}

// UIReachable checks that the Laminar UI responds over HTTPS. Any HTTP
// response counts as reachable; a reachable-but-unauthorized page is still
// a pass. Only a transport failure fails the probe.
func UIReachable(client *http.Client, baseURL string) probe.Probe {
	return probe.Probe{
		Name:     "UI reachable",
		Category: CategoryConnectivity,
		Run: func(ctx context.Context) (string, error) {
			url := strings.TrimRight(baseURL, "/") + "/sign-in"
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return "", err
			}
			resp, err := client.Do(req)
			if err != nil {
				return "", err
			}
			defer resp.Body.Close()

			return fmt.Sprintf("HTTP %d", resp.StatusCode), nil
		},
	}
}

// OTLPHTTPReachable checks that the OTLP/HTTP ingestion endpoint is alive
// by posting an empty protobuf body. 200, 400, 401, and 415 all mean the
// endpoint answered (body invalid or auth required); anything else fails.
func OTLPHTTPReachable(client *http.Client, tracesURL string) probe.Probe {
	return probe.Probe{
		Name:     "OTLP/HTTP endpoint",
		Category: CategoryConnectivity,
		Run: func(ctx context.Context) (string, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, tracesURL, http.NoBody)
			if err != nil {
				return "", err
			}
			req.Header.Set("Content-Type", "application/x-protobuf")
			resp, err := client.Do(req)
			if err != nil {
				return "", err
			}
			defer resp.Body.Close()

			switch resp.StatusCode {
			case http.StatusOK, http.StatusBadRequest, http.StatusUnauthorized, http.StatusUnsupportedMediaType:
				return fmt.Sprintf("HTTP %d", resp.StatusCode), nil
			default:
				return "", fmt.Errorf("HTTP %d", resp.StatusCode)
			}
		},
	}
}

// OTLPGRPCReachable checks that the gRPC ingestion endpoint accepts an
// HTTP/2 connection on the configured port. Success is connection
// establishment, not any application-level response. The probe waits up to
// the context deadline for the channel to become ready.
func OTLPGRPCReachable(target string, insecure bool) probe.Probe {
	return probe.Probe{
		Name:     "OTLP/gRPC endpoint",
		Category: CategoryConnectivity,
		Run: func(ctx context.Context) (string, error) {
			creds := credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})
			if insecure {
				creds = grpcinsecure.NewCredentials()
			}

			conn, err := grpc.NewClient(target,
				grpc.WithTransportCredentials(creds),
				grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
			)
			if err != nil {
				return "", err
			}
			defer conn.Close()

			conn.Connect()
			for {
				state := conn.GetState()
				switch state {
				case connectivity.Ready:
					return "connection established", nil
				case connectivity.TransientFailure, connectivity.Shutdown:
					return "", fmt.Errorf("connection failed (state %s)", state)
				default:
				}
				if !conn.WaitForStateChange(ctx, state) {
					return "", fmt.Errorf("timed out waiting for connection (last state %s)", state)
				}
			}
		},
	}
}

// SDKExport submits a trace through the library's default pipeline
// (gRPC transport, config-derived service name), the same path an
// application using this package would take.
func SDKExport(cfg *laminar.Config) probe.Probe {
	return probe.Probe{
		Name:     "SDK trace export",
		Category: CategoryExport,
		Run: func(ctx context.Context) (string, error) {
			return exportOnce(ctx, cfg, "sdk")
		},
	}
}

// GRPCExport submits a trace via a raw OTLP/gRPC exporter.
func GRPCExport(cfg *laminar.Config) probe.Probe {
	return probe.Probe{
		Name:     "OTLP/gRPC trace export",
		Category: CategoryExport,
		Run: func(ctx context.Context) (string, error) {
			return exportOnce(ctx, cfg, "grpc", laminar.WithProtocol(laminar.ProtocolGRPC))
		},
	}
}

// HTTPExport submits a trace via a raw OTLP/HTTP exporter.
func HTTPExport(cfg *laminar.Config) probe.Probe {
	return probe.Probe{
		Name:     "OTLP/HTTP trace export",
		Category: CategoryExport,
		Run: func(ctx context.Context) (string, error) {
			return exportOnce(ctx, cfg, "http", laminar.WithProtocol(laminar.ProtocolHTTP))
		},
	}
}

// exportOnce builds a dedicated provider, emits a single marker span, and
// force-flushes. The flush surfaces transport and auth errors; its absence
// is the pass condition.
func exportOnce(ctx context.Context, cfg *laminar.Config, label string, opts ...laminar.ProviderOption) (string, error) {
	opts = append(opts, laminar.WithServiceName("verify-"+label))
	tp, err := laminar.NewTracerProvider(ctx, cfg, opts...)
	if err != nil {
		return "", err
	}
	defer tp.Shutdown(context.WithoutCancel(ctx)) //nolint:errcheck // flush already reported delivery

	tracer := tp.Tracer("verify")
	err = laminar.Observe(ctx, tracer, "verify-"+label, func(ctx context.Context) error {
		laminar.SetAttributes(ctx, attribute.Bool("test", true))
		return nil
	})
	if err != nil {
		return "", err
	}

	if err := tp.ForceFlush(ctx); err != nil {
		return "", err
	}

	return "span delivered", nil
}
