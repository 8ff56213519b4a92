// Command laminar-verify validates that a Laminar deployment is fully
// operational: UI reachability, OTLP/HTTP and OTLP/gRPC ingestion
// endpoints, and trace export over each supported method. The exit status
// reflects the overall result, so it slots into health-check pipelines.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	laminar "github.com/orbitronai/laminar-go"
	"github.com/orbitronai/laminar-go/probe"
	"github.com/orbitronai/laminar-go/verify"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	logger := newLogger()
	defer logger.Sync() //nolint:errcheck // stderr sync failure is harmless

	// Local .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := laminar.FromEnv()
	if err != nil {
		logger.Error("failed to load configuration", zap.Error(err))
		return 2
	}

	fs := flag.NewFlagSet("laminar-verify", flag.ContinueOnError)
	fs.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "Laminar UI base URL")
	fs.StringVar(&cfg.GRPCEndpoint, "grpc-endpoint", cfg.GRPCEndpoint, "OTLP/gRPC endpoint (host:port)")
	fs.StringVar(&cfg.HTTPEndpoint, "http-endpoint", cfg.HTTPEndpoint, "OTLP/HTTP endpoint base URL")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Per-probe network timeout")
	connectivityOnly := fs.Bool("connectivity-only", false, "Skip trace-export probes (no API key required)")
	fs.Func("insecure", "Disable TLS (for local collectors)", func(s string) error {
		val := s == "true" || s == "1"
		cfg.Insecure = &val

		return nil
	})
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if !*connectivityOnly {
		if err := cfg.Validate(); err != nil {
			logger.Error("missing API key: set LAMINAR_API_KEY or pass --connectivity-only",
				zap.Error(err))
			return 2
		}
	}

	fmt.Println("\nLaminar Service Verification")
	fmt.Println("==================================================")
	fmt.Printf("  UI:        %s\n", cfg.BaseURL)
	fmt.Printf("  OTLP HTTP: %s\n", cfg.HTTPEndpoint)
	fmt.Printf("  OTLP gRPC: %s\n", cfg.GRPCTarget())
	fmt.Println("==================================================")
	fmt.Println()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := laminar.NewHTTPClient(laminar.WithClientTimeout(cfg.RequestTimeout()))

	agg := probe.NewAggregator()
	for _, p := range verify.ConnectivityProbes(cfg, client) {
		agg.Register(wrapWithTimeout(p, cfg.RequestTimeout()))
	}
	if *connectivityOnly {
		logger.Info("connectivity-only mode, skipping trace-export probes")
	} else {
		for _, p := range verify.ExportProbes(cfg) {
			agg.Register(wrapWithTimeout(p, cfg.RequestTimeout()))
		}
	}

	start := time.Now()
	report := agg.RunAll(ctx)
	logger.Debug("verification finished",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("passed", report.PassedCount()),
		zap.Int("total", report.TotalCount()),
	)

	report.Render(os.Stdout)

	if !report.OverallSuccess() {
		return 1
	}

	return 0
}

// wrapWithTimeout bounds a probe's context. The aggregator itself imposes
// no timeout; this keeps that responsibility with the probe configuration.
func wrapWithTimeout(p probe.Probe, timeout time.Duration) probe.Probe {
	inner := p.Run
	p.Run = func(ctx context.Context) (string, error) {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		return inner(ctx)
	}

	return p
}

func newLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}

	return logger
}
