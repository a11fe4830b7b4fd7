package prime

import (
	"fmt"
	"math"

	"github.com/kbukum/primekit/errors"
)

// BoundKind says how a Bound limits a range.
type BoundKind int

const (
	// KindUnbounded places no limit on that side of the range.
	KindUnbounded BoundKind = iota
	// KindIncluded limits the range to values up to and including the bound.
	KindIncluded
	// KindExcluded limits the range to values strictly inside the bound.
	KindExcluded
)

// Bound is one end of a range.
type Bound struct {
	kind  BoundKind
	value uint64
}

// Included returns a bound that contains n.
func Included(n uint64) Bound { return Bound{kind: KindIncluded, value: n} }

// Excluded returns a bound that stops just short of n.
func Excluded(n uint64) Bound { return Bound{kind: KindExcluded, value: n} }

// Unbounded returns a bound without a limit.
func Unbounded() Bound { return Bound{kind: KindUnbounded} }

// Kind returns the bound kind.
func (b Bound) Kind() BoundKind { return b.kind }

// Value returns the limit. It is zero for unbounded bounds.
func (b Bound) Value() uint64 { return b.value }

func (b Bound) String() string {
	switch b.kind {
	case KindIncluded:
		return fmt.Sprintf("included(%d)", b.value)
	case KindExcluded:
		return fmt.Sprintf("excluded(%d)", b.value)
	default:
		return "unbounded"
	}
}

// Resolve translates a pair of bounds into the closed range [min, max].
// The boolean is false when the bounds describe an empty range, such as an
// end excluded at zero.
//
// An unbounded end cannot be materialized and fails with INVALID_RANGE; an
// exclusive start at math.MaxUint64 fails with OVERFLOW.
func Resolve(start, end Bound) (min, max uint64, ok bool, err error) {
	switch end.kind {
	case KindIncluded:
		max = end.value
	case KindExcluded:
		if end.value == 0 {
			return 0, 0, false, nil
		}
		max = end.value - 1
	default:
		return 0, 0, false, errors.InvalidRange("the end bound is unbounded; use an Iterator to enumerate every prime").
			WithDetail("start", start.String())
	}

	switch start.kind {
	case KindIncluded:
		min = start.value
	case KindExcluded:
		if start.value == math.MaxUint64 {
			return 0, 0, false, errors.Overflow("exclusive start", start.value)
		}
		min = start.value + 1
	default:
		min = 0
	}

	return min, max, min <= max, nil
}

// Range returns the primes between two bounds using g.
// Nothing is computed when the bounds are invalid or describe an empty range.
func Range(g Generator, start, end Bound) ([]uint64, error) {
	min, max, ok, err := Resolve(start, end)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []uint64{}, nil
	}
	return g.Generate(min, max), nil
}

// UpTo returns every prime ≤ limit.
func UpTo(g Generator, limit uint64) []uint64 {
	return g.Generate(0, limit)
}
