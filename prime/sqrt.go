package prime

import (
	"math"
	"math/bits"
)

// square returns n*n, saturating at math.MaxUint64. The boolean reports saturation.
func square(n uint64) (uint64, bool) {
	hi, lo := bits.Mul64(n, n)
	if hi != 0 {
		return math.MaxUint64, true
	}
	return lo, false
}

// isqrt returns ⌊√n⌋.
func isqrt(n uint64) uint64 {
	if n < 2 {
		return n
	}
	r := uint64(math.Sqrt(float64(n)))
	// float64 has 53 bits of mantissa, so the estimate can be off by one either way
	for r > 0 {
		if sq, over := square(r); over || sq > n {
			r--
			continue
		}
		break
	}
	for {
		if sq, over := square(r + 1); over || sq > n {
			return r
		}
		r++
	}
}

// divisorCeiling tracks ⌊√candidate⌋ across an ascending run of candidates,
// bumping the factor only when a candidate reaches the next perfect square.
// Past (2^32-1)² the next square no longer fits in a uint64; the ceiling then
// stays at 2^32-1, which is ⌊√n⌋ for every remaining n.
type divisorCeiling struct {
	factor    uint64
	next      uint64
	saturated bool
}

func newDivisorCeiling(first uint64) divisorCeiling {
	c := divisorCeiling{factor: isqrt(first)}
	c.next, c.saturated = square(c.factor + 1)
	return c
}

// at returns ⌊√candidate⌋. Candidates must be passed in ascending order.
func (c *divisorCeiling) at(candidate uint64) uint64 {
	for !c.saturated && candidate >= c.next {
		c.factor++
		c.next, c.saturated = square(c.factor + 1)
	}
	return c.factor
}
