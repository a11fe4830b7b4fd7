package prime

import (
	"fmt"

	"github.com/kbukum/primekit/errors"
)

// Generator produces every prime in a closed range.
type Generator interface {
	// Generate returns the primes in [min, max] in ascending order.
	// Implementations may keep state between calls but must stay correct for
	// any sequence of queries.
	Generate(min, max uint64) []uint64
}

// Kind names a Generator implementation.
type Kind string

const (
	KindNaive       Kind = "naive"
	KindIncremental Kind = "incremental"
	KindSegmented   Kind = "segmented"
)

// Kinds lists every Kind accepted by New.
var Kinds = []Kind{KindNaive, KindIncremental, KindSegmented}

// New constructs the Generator identified by kind.
func New(kind Kind, opts ...Option) (Generator, error) {
	switch kind {
	case KindNaive:
		return NewNaive(opts...), nil
	case KindIncremental:
		return NewIncremental(opts...), nil
	case KindSegmented:
		return NewSegmented(opts...), nil
	default:
		return nil, errors.InvalidInput("generator", fmt.Sprintf("unknown generator %q", kind)).
			WithDetail("allowed", Kinds)
	}
}

// KindOf reports the Kind of g, or "" for foreign implementations.
func KindOf(g Generator) Kind {
	switch g.(type) {
	case *Naive:
		return KindNaive
	case *Incremental:
		return KindIncremental
	case *Segmented:
		return KindSegmented
	default:
		return ""
	}
}

// clampLow returns the first value of [min, max] worth testing, and false
// when the range holds no candidates at all.
func clampLow(min, max uint64) (uint64, bool) {
	if min < 2 {
		min = 2
	}
	return min, min <= max
}
