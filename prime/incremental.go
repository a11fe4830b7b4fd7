package prime

import (
	"context"
	"sort"
	"time"

	"github.com/kbukum/primekit/logger"
	"github.com/kbukum/primekit/observability"
)

// Incremental is a Generator that remembers every prime it has verified.
// Every integer up to MaxTested has been classified, so a query only
// trial-divides the candidates above it, and only by known primes.
//
// Use NewIncremental; the zero value also works and starts from scratch.
type Incremental struct {
	maxTested uint64
	primes    []uint64

	log     *logger.Logger
	metrics *observability.PrimeMetrics
}

// NewIncremental creates an Incremental generator with nothing classified yet.
func NewIncremental(opts ...Option) *Incremental {
	o := resolveOptions(LoggerIncremental, opts)
	return &Incremental{
		maxTested: 1,
		log:       o.log,
		metrics:   o.metrics,
	}
}

// Generate classifies every untested candidate up to and including max, then
// returns the known primes p with min ≤ p < max.
//
// The upper bound of the result is exclusive even though max itself is
// classified and stored: Generate(1, 2) returns no primes, while a later
// Generate(1, 3) returns [2]. Queries at or below MaxTested do no work.
func (g *Incremental) Generate(min, max uint64) []uint64 {
	if max > g.maxTested {
		g.extend(max)
	}

	lo := sort.Search(len(g.primes), func(i int) bool { return g.primes[i] >= min })
	hi := sort.Search(len(g.primes), func(i int) bool { return g.primes[i] >= max })
	if lo >= hi {
		return []uint64{}
	}
	return append([]uint64(nil), g.primes[lo:hi]...)
}

// extend classifies (maxTested, max] by trial division against known primes.
func (g *Incremental) extend(max uint64) {
	first := g.maxTested + 1
	if first < 2 {
		first = 2
	}
	if first > max {
		g.maxTested = max
		return
	}
	before := len(g.primes)
	start := time.Now()

	ceiling := newDivisorCeiling(first)
	for candidate := first; ; candidate++ {
		if !g.hasKnownFactor(candidate, ceiling.at(candidate)) {
			g.primes = append(g.primes, candidate)
		}
		if candidate == max {
			break
		}
	}

	g.metrics.RecordGenerate(context.Background(), string(KindIncremental), max-first+1, len(g.primes)-before, time.Since(start))
	if log := logOrNop(g.log); log.DebugEnabled() {
		log.Debug("extended", logger.Fields(
			logger.FieldMaxTested, g.maxTested,
			logger.FieldMax, max,
			logger.FieldCount, len(g.primes)-before,
			logger.FieldKnown, len(g.primes),
		))
	}
	g.maxTested = max
}

func (g *Incremental) hasKnownFactor(candidate, limit uint64) bool {
	for _, p := range g.primes {
		if p > limit {
			return false
		}
		if candidate%p == 0 {
			return true
		}
	}
	return false
}

// MaxTested returns the highest value classified so far. It never decreases.
func (g *Incremental) MaxTested() uint64 {
	if g.maxTested < 1 {
		return 1
	}
	return g.maxTested
}

// Known returns the number of primes verified so far.
func (g *Incremental) Known() int {
	return len(g.primes)
}
