// Package laminar provides a small client layer for sending trace
// telemetry to a self-hosted Laminar deployment, plus the building blocks
// used by the verification CLI.
//
// # Overview
//
// The package wraps the official OTel SDK, providing:
//   - Config sourced from the environment (LAMINAR_* variables) with
//     production defaults for every value except the API key
//   - TracerProvider construction with Bearer-authenticated OTLP export
//     over gRPC or HTTP
//   - Scope-bracketed span helpers ([Observe], [ObserveValue]) that end
//     the span on every exit path
//   - A traced HTTP client for callers that talk to the Laminar UI or
//     ingestion endpoints directly
//
// # Quick Start
//
// Load config and set up the provider:
//
//	cfg, err := laminar.FromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	tp, err := laminar.NewTracerProvider(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tp.Shutdown(ctx)
//
// Trace an operation:
//
//	tracer := tp.Tracer("my-service")
//	user, err := laminar.ObserveValue(ctx, tracer, "fetch-user-data",
//	    func(ctx context.Context) (*User, error) {
//	        laminar.SetAttributes(ctx, attribute.String("user.id", id))
//	        return store.Fetch(ctx, id)
//	    })
//
// Providers are never installed globally; each caller owns the provider it
// creates and shuts it down explicitly.
//
// # Verification
//
// The probe and verify sub-packages implement the deployment health checks
// used by cmd/laminar-verify. See those packages for details.
package laminar
