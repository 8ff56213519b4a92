// Command laminar-demo sends example traces to a Laminar deployment using
// each supported integration path. It exists to produce recognizable
// traces in the UI when onboarding a new deployment.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	laminar "github.com/orbitronai/laminar-go"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	mode := os.Args[1]
	switch mode {
	case "sdk", "grpc", "http":
		runDemo(mode)
	case "list":
		listModes()
	case "-h", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown mode: %s\n", mode)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`laminar-demo - send example traces to Laminar

Usage:
  laminar-demo <mode>

Modes:
  sdk     Trace a small pipeline through the library helpers (gRPC transport)
  grpc    Send an agent-workflow trace via a raw OTLP/gRPC exporter
  http    Send a data-pipeline trace via a raw OTLP/HTTP exporter
  list    Describe the available modes

Environment Variables:
  LAMINAR_API_KEY        Project API key (required)
  LAMINAR_BASE_URL       UI base URL
  LAMINAR_OTLP_GRPC_URL  OTLP/gRPC endpoint (host:port)
  LAMINAR_OTLP_HTTP_URL  OTLP/HTTP endpoint base URL
  OTEL_SERVICE_NAME      Service name shown in traces

Examples:
  laminar-demo sdk
  laminar-demo http`)
}

func listModes() {
	fmt.Println(`Available modes:

  sdk     User-request pipeline traced with laminar.ObserveValue
          - parent span with two children (fetch, enrich)

  grpc    Agent workflow exported over OTLP/gRPC
          - document retrieval and compliance-analysis child spans

  http    Data pipeline exported over OTLP/HTTP
          - extract, transform, load child spans`)
}

func runDemo(mode string) {
	_ = godotenv.Load()

	cfg, err := laminar.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR: LAMINAR_API_KEY is not set.")
		fmt.Fprintln(os.Stderr, "  1. Go to", cfg.BaseURL)
		fmt.Fprintln(os.Stderr, "  2. Open your project, then Settings, then API Keys")
		fmt.Fprintln(os.Stderr, "  3. export LAMINAR_API_KEY='<your-key>'")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := execute(ctx, cfg, mode); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Done! Check your traces at: %s\n", cfg.BaseURL)
}

func execute(ctx context.Context, cfg *laminar.Config, mode string) error {
	protocol := laminar.ProtocolGRPC
	if mode == "http" {
		protocol = laminar.ProtocolHTTP
	}

	tp, err := laminar.NewTracerProvider(ctx, cfg,
		laminar.WithProtocol(protocol),
		laminar.WithEnvironment("demo"),
	)
	if err != nil {
		return fmt.Errorf("failed to create tracer provider: %w", err)
	}
	defer tp.Shutdown(context.WithoutCancel(ctx)) //nolint:errcheck // flushed explicitly below

	tracer := tp.Tracer("laminar-demo")

	switch mode {
	case "sdk":
		err = userRequestPipeline(ctx, tracer)
	case "grpc":
		err = agentWorkflow(ctx, tracer)
	default:
		err = dataPipeline(ctx, tracer)
	}
	if err != nil {
		return err
	}

	fmt.Println("Flushing traces...")

	return tp.ForceFlush(ctx)
}

// userRequestPipeline mirrors the simplest integration: nested operations
// traced through the Observe helpers.
func userRequestPipeline(ctx context.Context, tracer trace.Tracer) error {
	fmt.Println("Sending traced request...")

	user, err := laminar.ObserveValue(ctx, tracer, "process-user-request",
		func(ctx context.Context) (map[string]any, error) {
			user, err := laminar.ObserveValue(ctx, tracer, "fetch-user-data",
				func(ctx context.Context) (map[string]any, error) {
					laminar.SetAttributes(ctx, attribute.String("user.id", "user-42"))
					time.Sleep(100 * time.Millisecond) // simulate I/O
					return map[string]any{
						"id":   "user-42",
						"name": "Alice",
						"plan": "enterprise",
					}, nil
				})
			if err != nil {
				return nil, err
			}

			return laminar.ObserveValue(ctx, tracer, "enrich-profile",
				func(ctx context.Context) (map[string]any, error) {
					time.Sleep(50 * time.Millisecond)
					user["enriched"] = true
					user["risk_score"] = 0.12
					return user, nil
				})
		})
	if err != nil {
		return err
	}

	fmt.Printf("Result: %v\n", user)

	return nil
}

// agentWorkflow emits the parent/child span tree used by the gRPC example.
func agentWorkflow(ctx context.Context, tracer trace.Tracer) error {
	fmt.Println("Sending traced operations...")

	return laminar.Observe(ctx, tracer, "agent-workflow", func(ctx context.Context) error {
		laminar.SetAttributes(ctx,
			attribute.String("agent.name", "compliance-checker"),
			attribute.String("agent.version", "1.0.0"),
		)

		err := laminar.Observe(ctx, tracer, "retrieve-documents", func(ctx context.Context) error {
			laminar.SetAttributes(ctx,
				attribute.String("query", "regulation updates 2026"),
				attribute.Int("doc.count", 5),
			)
			time.Sleep(100 * time.Millisecond)
			return nil
		})
		if err != nil {
			return err
		}

		err = laminar.Observe(ctx, tracer, "analyze-compliance", func(ctx context.Context) error {
			laminar.SetAttributes(ctx,
				attribute.String("model", "gpt-4o"),
				attribute.Int("tokens.input", 1500),
				attribute.Int("tokens.output", 320),
			)
			time.Sleep(50 * time.Millisecond)
			return nil
		})
		if err != nil {
			return err
		}

		laminar.SetAttributes(ctx, attribute.String("result.status", "compliant"))

		return nil
	})
}

// dataPipeline emits the extract/transform/load tree used by the HTTP example.
func dataPipeline(ctx context.Context, tracer trace.Tracer) error {
	fmt.Println("Sending traced operations...")

	return laminar.Observe(ctx, tracer, "data-pipeline", func(ctx context.Context) error {
		laminar.SetAttributes(ctx, attribute.String("pipeline.name", "lead-enrichment"))
		fmt.Printf("Trace ID: %s\n", laminar.TraceID(ctx))

		stages := []struct {
			name  string
			attrs []attribute.KeyValue
			delay time.Duration
		}{
			{"extract", []attribute.KeyValue{
				attribute.String("source", "crm-api"),
				attribute.Int("records", 150),
			}, 80 * time.Millisecond},
			{"transform", []attribute.KeyValue{
				attribute.StringSlice("transformations", []string{"normalize", "deduplicate"}),
			}, 50 * time.Millisecond},
			{"load", []attribute.KeyValue{
				attribute.String("destination", "postgres"),
				attribute.Int("records.written", 142),
			}, 30 * time.Millisecond},
		}

		for _, stage := range stages {
			err := laminar.Observe(ctx, tracer, stage.name, func(ctx context.Context) error {
				laminar.SetAttributes(ctx, stage.attrs...)
				time.Sleep(stage.delay)
				return nil
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
}
