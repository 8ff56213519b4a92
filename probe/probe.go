// Package probe runs an ordered collection of independent health checks
// and aggregates their outcomes into a deterministic report.
package probe

import (
	"context"
	"fmt"
)

// Probe is a named, independently runnable check. Run either succeeds,
// optionally producing a detail string (an HTTP status, for example), or
// fails with a descriptive error. Probes own their timeouts; the aggregator
// imposes none.
type Probe struct {
	Name     string
	Category string
	Run      func(ctx context.Context) (detail string, err error)
}

// Result is the outcome of one executed probe.
type Result struct {
	Name     string
	Category string
	Passed   bool
	Detail   string
}

// Report aggregates the results of one RunAll invocation, in registration
// order. Counts are derived from Results so they cannot drift.
type Report struct {
	Results []Result
}

// TotalCount returns the number of executed probes.
func (r *Report) TotalCount() int { return len(r.Results) }

// PassedCount returns the number of probes that passed.
func (r *Report) PassedCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Passed {
			n++
		}
	}

	return n
}

// OverallSuccess reports whether every probe passed. An empty report is a
// vacuous success: zero registered probes means zero failures.
func (r *Report) OverallSuccess() bool { return r.PassedCount() == r.TotalCount() }

// Aggregator executes a fixed, ordered list of probes. A failing probe
// never prevents the remaining probes from running. Not safe for
// concurrent RunAll calls on the same instance.
type Aggregator struct {
	probes []Probe
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator { return &Aggregator{} }

// Register appends a probe to the execution list. Duplicate names are
// permitted and simply produce duplicate report lines.
func (a *Aggregator) Register(p Probe) {
	a.probes = append(a.probes, p)
}

// RunAll executes every registered probe once, in registration order, and
// returns a Report covering all of them. Probe failures are data, not
// control flow: RunAll never returns an error on a probe's behalf.
func (a *Aggregator) RunAll(ctx context.Context) *Report {
	report := &Report{Results: make([]Result, 0, len(a.probes))}
	for _, p := range a.probes {
		detail, err := runProbe(ctx, p)
		result := Result{Name: p.Name, Category: p.Category, Passed: err == nil, Detail: detail}
		if err != nil {
			result.Detail = err.Error()
		}
		report.Results = append(report.Results, result)
	}

	return report
}

// runProbe invokes a single probe, converting a panic into a failure so a
// misbehaving probe cannot abort the rest of the run.
func runProbe(ctx context.Context, p Probe) (detail string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("probe panicked: %v", r)
		}
	}()

	return p.Run(ctx)
}
