// Package packageservice counts installed packages across every package
// manager present on the host and merges the counts into one report.
package packageservice

import (
	"context"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/redjax/sysreadout/internal/readout"
)

// Backend is one package manager's count query.
type Backend struct {
	Name  string
	Count func(ctx context.Context) (uint64, error)
}

// Options control how CountAll runs the backends.
type Options struct {
	// Concurrent runs backends in parallel. Results are identical either way.
	Concurrent bool
	// Timeout bounds the whole aggregation. Backends still running when it
	// expires are reported as unavailable. Zero means no deadline.
	Timeout time.Duration
	// Disabled lists backend names to leave out.
	Disabled []string
}

// CountAll queries every backend and sums the counts of those that
// succeed. Failed backends are reported individually in the result list.
//
// No backends at all is KindNotImplemented; backends present but all
// failing is KindMetricNotAvailable. The report is returned in both cases.
func CountAll(ctx context.Context, backends []Backend, opts Options) (readout.PackageReport, error) {
	active := make([]Backend, 0, len(backends))
	for _, b := range backends {
		if !slices.Contains(opts.Disabled, b.Name) {
			active = append(active, b)
		}
	}

	if len(active) == 0 {
		return readout.PackageReport{}, readout.NotImplemented(readout.FieldPackageCount)
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	results := make([]readout.PackageResult, len(active))

	if opts.Concurrent {
		var g errgroup.Group
		for i, b := range active {
			g.Go(func() error {
				results[i] = runAbandoning(ctx, b)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, b := range active {
			results[i] = run(ctx, b)
		}
	}

	report := readout.PackageReport{Results: results}

	var (
		attempted []string
		causes    []*readout.Error
		succeeded int
	)
	for _, res := range results {
		attempted = append(attempted, res.Backend)
		if res.OK() {
			report.Total += res.Count
			succeeded++
			continue
		}
		causes = append(causes, readout.Wrap(res.Err))
	}

	if succeeded == 0 {
		return report, &readout.Error{
			Kind:      readout.KindMetricNotAvailable,
			Field:     readout.FieldPackageCount,
			Attempted: attempted,
			Causes:    causes,
		}
	}

	return report, nil
}

// run executes one backend on the calling goroutine. A backend that
// ignores ctx delays the rest; once ctx is done the remaining backends are
// reported without being called.
func run(ctx context.Context, b Backend) readout.PackageResult {
	if b.Count == nil {
		return failed(b.Name, readout.NotImplemented(readout.FieldPackageCount))
	}
	if err := ctx.Err(); err != nil {
		return failed(b.Name, readout.Unavailablef("gave up waiting: %v", err))
	}

	n, err := b.Count(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !readout.IsUnavailable(err) {
			return failed(b.Name, readout.Unavailablef("gave up waiting: %v", ctxErr))
		}
		return failed(b.Name, err)
	}
	return readout.PackageResult{Backend: b.Name, Count: n}
}

// runAbandoning is run for concurrent mode: a backend still busy when ctx
// is done is reported immediately and its goroutine left to finish alone.
func runAbandoning(ctx context.Context, b Backend) readout.PackageResult {
	if b.Count == nil {
		return run(ctx, b)
	}

	done := make(chan readout.PackageResult, 1)
	go func() { done <- run(ctx, b) }()

	select {
	case res := <-done:
		return res
	case <-ctx.Done():
		return failed(b.Name, readout.Unavailablef("gave up waiting: %v", ctx.Err()))
	}
}

func failed(name string, err error) readout.PackageResult {
	e := readout.Wrap(err)
	e.Field = readout.FieldPackageCount
	e.Adapter = name
	return readout.PackageResult{Backend: name, Err: e}
}

// Readout serves readout.PackageReadout from a fixed backend set.
type Readout struct {
	Backends []Backend
	Options  Options
}

func (r *Readout) CountPackages(ctx context.Context) (readout.PackageReport, error) {
	return CountAll(ctx, r.Backends, r.Options)
}

// Names lists the backend names in registration order.
func Names(backends []Backend) []string {
	names := make([]string, len(backends))
	for i, b := range backends {
		names[i] = b.Name
	}
	return names
}
