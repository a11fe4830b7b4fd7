package prime

import (
	"context"
	"iter"
	"math"

	"github.com/kbukum/primekit/errors"
	"github.com/kbukum/primekit/logger"
	"github.com/kbukum/primekit/observability"
	"github.com/kbukum/primekit/validation"
)

// Window growth defaults: the first window spans 1024 integers and each
// refill doubles the previous span up to 1 048 576.
const (
	DefaultInitialWindow uint64 = 1024
	DefaultMaxWindow     uint64 = 1 << 20
)

// maxPrimeGap is the largest gap between consecutive primes below 2^64.
// A correct Generator never leaves more integers than this without a prime.
const maxPrimeGap uint64 = 1550

// WindowConfig controls how many integers an Iterator asks its generator to
// classify per refill.
//
// Both sizes must be even. Windows then always end on an even number, which
// is never prime past 2, so a generator with an exclusive upper bound (such
// as Incremental) cannot drop a prime at a window edge.
type WindowConfig struct {
	Initial uint64 `yaml:"initial" mapstructure:"initial" json:"initial" validate:"gte=4,even"`
	Max     uint64 `yaml:"max" mapstructure:"max" json:"max" validate:"even,gtefield=Initial"`
}

// DefaultWindowConfig returns the standard 1024 → 1 048 576 growth policy.
func DefaultWindowConfig() WindowConfig {
	return WindowConfig{Initial: DefaultInitialWindow, Max: DefaultMaxWindow}
}

// ApplyDefaults fills unset sizes.
func (w *WindowConfig) ApplyDefaults() {
	if w.Initial == 0 {
		w.Initial = DefaultInitialWindow
	}
	if w.Max == 0 {
		w.Max = DefaultMaxWindow
	}
}

// Validate checks the window sizes.
func (w WindowConfig) Validate() error {
	return validation.Validate(w)
}

// Iterator yields every prime in ascending order, without end, by asking a
// Generator for successive windows [bufferMin, bufferMax]. A window spans
// Initial integers at first and doubles on each refill up to Max.
//
// An Iterator only moves forward. Start a new one to enumerate again.
type Iterator struct {
	gen    Generator
	window WindowConfig

	buffer    []uint64
	bufferMin uint64
	bufferMax uint64
	cursor    int

	last    uint64
	emitted uint64

	// integers covered by consecutive empty windows
	emptySpan uint64
	broken    bool

	log     *logger.Logger
	metrics *observability.PrimeMetrics
}

// NewIterator wraps gen in an Iterator. It fails when WithWindow supplies an
// invalid growth policy.
func NewIterator(gen Generator, opts ...Option) (*Iterator, error) {
	o := resolveOptions(LoggerIterator, opts)
	window := DefaultWindowConfig()
	if o.window != nil {
		window = *o.window
		if err := window.Validate(); err != nil {
			return nil, err
		}
	}

	it := &Iterator{
		gen:     gen,
		window:  window,
		log:     o.log,
		metrics: o.metrics,
	}
	it.seek(o.start)
	return it, nil
}

// Iter wraps gen in an Iterator with the default window policy.
func Iter(gen Generator) *Iterator {
	it, _ := NewIterator(gen)
	return it
}

// seek positions the first window to begin at n. An even n above 2 is
// composite, so the window starts at n+1 to keep window ends even.
func (it *Iterator) seek(n uint64) {
	if n <= 2 {
		return
	}
	if n%2 == 0 {
		n++
	}
	it.bufferMin = n - 1
	it.bufferMax = n - 1
}

// Next returns the next prime. The boolean is false once the window has
// reached math.MaxUint64 and every prime below it has been returned, or once
// the Generator has returned empty windows spanning as many integers as the widest
// prime gap below 2^64. In the second case Broken reports true.
func (it *Iterator) Next() (uint64, bool) {
	for it.cursor >= len(it.buffer) {
		if it.broken || !it.refill() {
			return 0, false
		}
		if len(it.buffer) > 0 {
			it.emptySpan = 0
			continue
		}
		it.emptySpan += it.bufferMax - it.bufferMin + 1
		if it.emptySpan >= maxPrimeGap && it.bufferMax != math.MaxUint64 {
			it.broken = true
			logOrNop(it.log).Error("generator returned no primes across a prime gap", logger.Fields(
				logger.FieldWindowMin, it.bufferMin,
				logger.FieldWindowMax, it.bufferMax,
			))
			return 0, false
		}
	}
	p := it.buffer[it.cursor]
	it.cursor++
	it.last = p
	it.emitted++
	return p, true
}

// Must returns the next prime and panics with a SEQUENCE_EXHAUSTED
// *errors.AppError if there is none. The prime sequence is infinite, so this
// only happens at the top of the uint64 domain or with a broken Generator.
func (it *Iterator) Must() uint64 {
	p, ok := it.Next()
	if !ok {
		panic(errors.SequenceExhausted(it.last).WithDetails(map[string]any{
			"emitted":    it.emitted,
			"window_min": it.bufferMin,
			"window_max": it.bufferMax,
			"broken":     it.broken,
		}))
	}
	return p
}

// Broken reports whether Next stopped because the Generator skipped a run of
// integers that must contain a prime.
func (it *Iterator) Broken() bool {
	return it.broken
}

// refill replaces the buffer with the primes of the next window.
// It returns false when no window is left.
func (it *Iterator) refill() bool {
	if it.bufferMax == math.MaxUint64 {
		return false
	}

	size := it.nextWindowSize()
	it.bufferMin = it.bufferMax + 1
	if it.bufferMin > math.MaxUint64-(size-1) {
		it.bufferMax = math.MaxUint64
	} else {
		it.bufferMax = it.bufferMin + size - 1
	}

	it.buffer = it.gen.Generate(it.bufferMin, it.bufferMax)
	it.cursor = 0

	it.metrics.RecordRefill(context.Background(), it.bufferMax-it.bufferMin+1, len(it.buffer))
	if log := logOrNop(it.log); log.DebugEnabled() {
		log.Debug("window refilled", logger.Fields(
			logger.FieldWindowMin, it.bufferMin,
			logger.FieldWindowMax, it.bufferMax,
			logger.FieldCount, len(it.buffer),
		))
	}
	return true
}

func (it *Iterator) nextWindowSize() uint64 {
	old := it.bufferMax - it.bufferMin
	switch {
	case old == 0:
		return it.window.Initial
	case old >= it.window.Max/2:
		return it.window.Max
	default:
		return old * 2
	}
}

// Window returns the bounds of the current window. Both are zero before the
// first call to Next.
func (it *Iterator) Window() (min, max uint64) {
	return it.bufferMin, it.bufferMax
}

// Last returns the most recent prime returned by Next, or 0 before the first.
func (it *Iterator) Last() uint64 {
	return it.last
}

// Emitted returns how many primes Next has returned.
func (it *Iterator) Emitted() uint64 {
	return it.emitted
}

// All returns the remaining primes as a range-over-func sequence.
//
//	for p := range it.All() { ... }
func (it *Iterator) All() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		for {
			p, ok := it.Next()
			if !ok || !yield(p) {
				return
			}
		}
	}
}

// Stream adapts the Iterator to a context-aware pull interface:
// Next(ctx) returns (value, true, nil), or (0, false, nil) when exhausted,
// or (0, false, ctx.Err()) once ctx is done.
type Stream struct {
	it     *Iterator
	closed bool
}

// Stream returns a Stream reading from it.
func (it *Iterator) Stream() *Stream {
	return &Stream{it: it}
}

// Next returns the next prime.
func (s *Stream) Next(ctx context.Context) (uint64, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	if s.closed {
		return 0, false, nil
	}
	p, ok := s.it.Next()
	return p, ok, nil
}

// Close ends the stream. Later calls to Next report exhaustion.
func (s *Stream) Close() error {
	s.closed = true
	return nil
}

// First returns the next n primes from it.
func First(it *Iterator, n int) []uint64 {
	out := make([]uint64, 0, n)
	for len(out) < n {
		p, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, p)
	}
	return out
}

// To returns the primes from it up to and including limit. The first prime
// above limit is consumed and discarded.
func To(it *Iterator, limit uint64) []uint64 {
	out := []uint64{}
	for p := range it.All() {
		if p > limit {
			break
		}
		out = append(out, p)
	}
	return out
}
