package service

import (
	"context"
	"sync"
	"time"

	"github.com/kbukum/primekit/errors"
	"github.com/kbukum/primekit/logger"
	"github.com/kbukum/primekit/observability"
	"github.com/kbukum/primekit/prime"
	"github.com/kbukum/primekit/validation"
)

// Operation names used for spans, metrics and logs.
const (
	OpBetween = "between"
	OpRange   = "range"
	OpFirst   = "first"
)

// Primes answers prime queries for concurrent callers from one shared
// generator. Generators are single-owner, so every Generate call is
// serialized; an Incremental generator therefore keeps what any query taught it.
type Primes struct {
	cfg  Config
	kind prime.Kind
	name string

	mu  sync.Mutex
	gen prime.Generator

	log          *logger.Logger
	metrics      *observability.Metrics
	primeMetrics *observability.PrimeMetrics
}

// Option configures Primes.
type Option func(*Primes)

// WithLogger sets the service logger.
func WithLogger(l *logger.Logger) Option {
	return func(p *Primes) { p.log = l }
}

// WithMetrics records request counts and latencies on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(p *Primes) { p.metrics = m }
}

// WithPrimeMetrics records generator and iterator work on m.
func WithPrimeMetrics(m *observability.PrimeMetrics) Option {
	return func(p *Primes) { p.primeMetrics = m }
}

// WithServiceName sets the service name attached to spans and metrics.
func WithServiceName(name string) Option {
	return func(p *Primes) { p.name = name }
}

// New validates cfg and builds the shared generator.
func New(cfg Config, opts ...Option) (*Primes, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Primes{cfg: cfg, kind: prime.Kind(cfg.Generator), name: "primes"}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = logger.WithComponent("service.primes")
	}

	gen, err := prime.New(p.kind, prime.WithMetrics(p.primeMetrics))
	if err != nil {
		return nil, err
	}
	p.gen = gen
	return p, nil
}

// Kind returns the generator kind in use.
func (p *Primes) Kind() prime.Kind { return p.kind }

// Config returns the effective configuration.
func (p *Primes) Config() Config { return p.cfg }

// Generate implements prime.Generator by locking around the shared generator.
func (p *Primes) Generate(min, max uint64) []uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gen.Generate(min, max)
}

// Between returns the primes in [min, max] as the configured generator
// reports them. An incremental generator leaves out max itself.
func (p *Primes) Between(ctx context.Context, min, max uint64) ([]uint64, error) {
	return p.run(ctx, OpBetween, observability.SpanPrimesBetween, func(ctx context.Context) ([]uint64, error) {
		observability.SetSpanAttribute(ctx, observability.AttrMin, min)
		observability.SetSpanAttribute(ctx, observability.AttrMax, max)
		return p.bounded(ctx, prime.Included(min), prime.Included(max))
	})
}

// Range parses expr (for example "10..=100") and returns the primes it covers.
func (p *Primes) Range(ctx context.Context, expr string) ([]uint64, error) {
	return p.run(ctx, OpRange, observability.SpanPrimesRange, func(ctx context.Context) ([]uint64, error) {
		observability.SetSpanAttribute(ctx, observability.AttrRange, expr)
		start, end, err := prime.ParseRange(expr)
		if err != nil {
			return nil, err
		}
		return p.bounded(ctx, start, end)
	})
}

func (p *Primes) bounded(ctx context.Context, start, end prime.Bound) ([]uint64, error) {
	min, max, ok, err := prime.Resolve(start, end)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []uint64{}, nil
	}
	if err := validation.New().Span("range", min, max, p.cfg.MaxQuerySpan).Err(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Canceled(err)
	}
	return p.Generate(min, max), nil
}

// First returns the first count primes. Each call walks its own iterator over
// the shared generator, so concurrent calls never share a cursor.
func (p *Primes) First(ctx context.Context, count int) ([]uint64, error) {
	return p.run(ctx, OpFirst, observability.SpanPrimesFirst, func(ctx context.Context) ([]uint64, error) {
		err := validation.New().
			Positive("count", count).
			AtMost("count", uint64(max(count, 0)), uint64(p.cfg.MaxCount)).
			Err()
		if err != nil {
			return nil, err
		}

		it, err := prime.NewIterator(p,
			prime.WithWindow(p.cfg.Window),
			prime.WithMetrics(p.primeMetrics),
		)
		if err != nil {
			return nil, err
		}
		stream := it.Stream()
		defer stream.Close()

		out := make([]uint64, 0, count)
		for len(out) < count {
			v, ok, err := stream.Next(ctx)
			if err != nil {
				return nil, errors.Canceled(err)
			}
			if !ok {
				return nil, errors.SequenceExhausted(it.Last())
			}
			out = append(out, v)
		}
		return out, nil
	})
}

// run wraps one query in a span, request metrics and a completion log.
func (p *Primes) run(ctx context.Context, op, span string, fn func(context.Context) ([]uint64, error)) ([]uint64, error) {
	oc := observability.NewOperationContext(p.name, op, logger.RequestIDFromContext(ctx), p.metrics)
	ctx, sp := oc.StartSpanForOperation(ctx, span)
	observability.SetSpanAttribute(ctx, observability.AttrGenerator, string(p.kind))

	out, err := fn(ctx)

	log := p.log.WithContext(ctx)
	if err != nil {
		appErr := errors.Wrap(err)
		oc.EndOperation(ctx, sp, "error", appErr)
		p.metrics.RecordError(ctx, string(appErr.Code), op)
		log.Warn("query failed", logger.Fields(
			logger.FieldOperation, op,
			logger.FieldError, appErr.Error(),
			"code", string(appErr.Code),
		))
		return nil, appErr
	}

	observability.SetSpanAttribute(ctx, observability.AttrCount, len(out))
	oc.EndOperation(ctx, sp, "ok", nil)
	if log.DebugEnabled() {
		log.Debug("query served", logger.Fields(
			logger.FieldOperation, op,
			logger.FieldGenerator, string(p.kind),
			logger.FieldCount, len(out),
			logger.FieldDuration, oc.Duration().Milliseconds(),
		))
	}
	return out, nil
}

// CheckHealth reports the shared generator. It waits for any running query.
func (p *Primes) CheckHealth(ctx context.Context) observability.Health {
	start := time.Now()
	p.mu.Lock()
	details := map[string]any{"generator": string(p.kind)}
	if inc, ok := p.gen.(*prime.Incremental); ok {
		details["max_tested"] = inc.MaxTested()
		details["known"] = inc.Known()
	}
	p.mu.Unlock()

	h := observability.Health{
		Name:    "generator",
		Status:  observability.HealthStatusUp,
		Details: details,
	}
	// a long wait for the lock means queries are queueing behind a large one
	if wait := time.Since(start); wait > time.Second {
		h.Status = observability.HealthStatusDegraded
		h.Message = "generator busy for " + wait.Round(time.Millisecond).String()
	}
	return h
}
