package prime

import (
	"context"
	"time"

	"github.com/kbukum/primekit/logger"
	"github.com/kbukum/primekit/observability"
)

// Naive is a stateless Generator that trial-divides each candidate by every
// integer from 2 up to its square root. The zero value is ready to use.
type Naive struct {
	log     *logger.Logger
	metrics *observability.PrimeMetrics
}

// NewNaive creates a Naive generator.
func NewNaive(opts ...Option) *Naive {
	o := resolveOptions(LoggerNaive, opts)
	return &Naive{log: o.log, metrics: o.metrics}
}

// Generate returns the primes in [min, max]. Values below 2 are never tested.
func (n *Naive) Generate(min, max uint64) []uint64 {
	primes := []uint64{}
	first, ok := clampLow(min, max)
	if !ok {
		return primes
	}

	start := time.Now()
	ceiling := newDivisorCeiling(first)
	for candidate := first; ; candidate++ {
		if !hasDivisorUpTo(candidate, ceiling.at(candidate)) {
			primes = append(primes, candidate)
		}
		if candidate == max {
			break
		}
	}

	n.metrics.RecordGenerate(context.Background(), string(KindNaive), max-first+1, len(primes), time.Since(start))
	if log := logOrNop(n.log); log.DebugEnabled() {
		log.Debug("generated", logger.Fields(
			logger.FieldMin, min,
			logger.FieldMax, max,
			logger.FieldCount, len(primes),
		))
	}
	return primes
}

// hasDivisorUpTo reports whether any integer in [2, limit] divides candidate.
func hasDivisorUpTo(candidate, limit uint64) bool {
	for factor := uint64(2); factor <= limit; factor++ {
		if candidate%factor == 0 {
			return true
		}
	}
	return false
}
