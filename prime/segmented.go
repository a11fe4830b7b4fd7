package prime

import (
	"context"
	"math"
	"time"

	"github.com/kbukum/primekit/logger"
	"github.com/kbukum/primekit/observability"
)

// DefaultSegmentSize is the number of candidates sieved at once by Segmented.
const DefaultSegmentSize = 1 << 16

// Segmented is a Generator that sieves [min, max] in fixed-size segments,
// crossing off multiples of the primes up to √max. The sieving primes come
// from an embedded Incremental generator, so they are only computed once
// across calls; the segments themselves are discarded after each call.
type Segmented struct {
	base        *Incremental
	segmentSize uint64

	log     *logger.Logger
	metrics *observability.PrimeMetrics
}

// NewSegmented creates a Segmented generator.
func NewSegmented(opts ...Option) *Segmented {
	o := resolveOptions(LoggerSegmented, opts)
	return &Segmented{
		base:        NewIncremental(WithLogger(o.log)),
		segmentSize: DefaultSegmentSize,
		log:         o.log,
		metrics:     o.metrics,
	}
}

// Generate returns the primes in [min, max].
func (s *Segmented) Generate(min, max uint64) []uint64 {
	primes := []uint64{}
	first, ok := clampLow(min, max)
	if !ok {
		return primes
	}
	if s.base == nil {
		s.base = &Incremental{maxTested: 1}
	}
	size := s.segmentSize
	if size == 0 {
		size = DefaultSegmentSize
	}

	start := time.Now()
	// the base generator's result excludes its upper bound, so ask for one more
	root := isqrt(max)
	sieving := s.base.Generate(2, root+1)

	composite := make([]bool, size)
	for lo := first; ; {
		hi := max
		if max-lo >= size {
			hi = lo + size - 1
		}
		span := composite[:hi-lo+1]
		clear(span)

		for _, p := range sieving {
			sq, _ := square(p)
			if sq > hi {
				break
			}
			m, ok := firstMultipleAtLeast(p, lo)
			if !ok {
				continue
			}
			if m < sq {
				m = sq
			}
			for m <= hi {
				span[m-lo] = true
				if hi-m < p {
					break
				}
				m += p
			}
		}

		for i, c := range span {
			if !c {
				primes = append(primes, lo+uint64(i))
			}
		}

		if hi == max {
			break
		}
		lo = hi + 1
	}

	s.metrics.RecordGenerate(context.Background(), string(KindSegmented), max-first+1, len(primes), time.Since(start))
	if log := logOrNop(s.log); log.DebugEnabled() {
		log.Debug("sieved", logger.Fields(
			logger.FieldMin, min,
			logger.FieldMax, max,
			logger.FieldCount, len(primes),
			"sieving_primes", len(sieving),
		))
	}
	return primes
}

// firstMultipleAtLeast returns the smallest multiple of p that is ≥ n.
// The boolean is false when that multiple does not fit in a uint64.
func firstMultipleAtLeast(p, n uint64) (uint64, bool) {
	m := (n / p) * p
	if m == n {
		return m, true
	}
	if m > math.MaxUint64-p {
		return 0, false
	}
	return m + p, true
}
