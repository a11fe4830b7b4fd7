package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// PrimeMetrics holds the instruments recorded by generators and iterators.
// A nil *PrimeMetrics records nothing, so generators built without metrics
// pay only a nil check.
type PrimeMetrics struct {
	candidates metric.Int64Counter
	found      metric.Int64Counter
	duration   metric.Float64Histogram
	refills    metric.Int64Counter
	windowSize metric.Int64Histogram
}

// NewPrimeMetrics creates the generator instruments on meter.
func NewPrimeMetrics(meter metric.Meter) (*PrimeMetrics, error) {
	candidates, err := meter.Int64Counter("primes.candidates",
		metric.WithDescription("Integers classified by a generator"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating primes.candidates counter: %w", err)
	}

	found, err := meter.Int64Counter("primes.found",
		metric.WithDescription("Primes discovered by a generator"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating primes.found counter: %w", err)
	}

	duration, err := meter.Float64Histogram("primes.generate.duration",
		metric.WithDescription("Time spent classifying candidates in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating primes.generate.duration histogram: %w", err)
	}

	refills, err := meter.Int64Counter("primes.iterator.refills",
		metric.WithDescription("Windows requested by iterators"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating primes.iterator.refills counter: %w", err)
	}

	windowSize, err := meter.Int64Histogram("primes.iterator.window",
		metric.WithDescription("Integers spanned by each iterator window"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating primes.iterator.window histogram: %w", err)
	}

	return &PrimeMetrics{
		candidates: candidates,
		found:      found,
		duration:   duration,
		refills:    refills,
		windowSize: windowSize,
	}, nil
}

// RecordGenerate records one classification pass of a generator.
func (m *PrimeMetrics) RecordGenerate(ctx context.Context, generator string, tested uint64, found int, d time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("generator", generator))
	m.candidates.Add(ctx, clampInt64(tested), attrs)
	m.found.Add(ctx, int64(found), attrs)
	m.duration.Record(ctx, d.Seconds(), attrs)
}

// RecordRefill records one iterator window.
func (m *PrimeMetrics) RecordRefill(ctx context.Context, size uint64, found int) {
	if m == nil {
		return
	}
	m.refills.Add(ctx, 1)
	m.windowSize.Record(ctx, clampInt64(size))
	m.found.Add(ctx, int64(found), metric.WithAttributes(attribute.String("generator", "iterator")))
}

func clampInt64(v uint64) int64 {
	if v > 1<<63-1 {
		return 1<<63 - 1
	}
	return int64(v)
}
