package prime

import (
	"strconv"
	"strings"

	"github.com/kbukum/primekit/errors"
)

// ParseRange parses range notation into a pair of bounds:
//
//	"a..b"   a ≤ p < b
//	"a..=b"  a ≤ p ≤ b
//	"..b"    p < b
//	"..=b"   p ≤ b
//	"a.."    a ≤ p (rejected by Range, accepted here)
//	".."     every p
//
// Whitespace around the operands is ignored.
func ParseRange(expr string) (start, end Bound, err error) {
	s := strings.TrimSpace(expr)
	idx := strings.Index(s, "..")
	if idx < 0 {
		return Bound{}, Bound{}, errors.InvalidRange("expected a range such as 10..=100").
			WithDetail("expr", expr)
	}

	lo, hi := strings.TrimSpace(s[:idx]), s[idx+2:]
	inclusive := strings.HasPrefix(hi, "=")
	if inclusive {
		hi = hi[1:]
	}
	hi = strings.TrimSpace(hi)

	start = Unbounded()
	if lo != "" {
		n, perr := parseOperand(expr, lo)
		if perr != nil {
			return Bound{}, Bound{}, perr
		}
		start = Included(n)
	}

	end = Unbounded()
	switch {
	case hi != "":
		n, perr := parseOperand(expr, hi)
		if perr != nil {
			return Bound{}, Bound{}, perr
		}
		if inclusive {
			end = Included(n)
		} else {
			end = Excluded(n)
		}
	case inclusive:
		return Bound{}, Bound{}, errors.InvalidRange("an inclusive range needs an end value").
			WithDetail("expr", expr)
	}

	return start, end, nil
}

func parseOperand(expr, operand string) (uint64, error) {
	n, err := strconv.ParseUint(strings.ReplaceAll(operand, "_", ""), 10, 64)
	if err != nil {
		return 0, errors.InvalidRange("bounds must be unsigned 64-bit integers").
			WithDetails(map[string]any{"expr": expr, "operand": operand}).
			WithCause(err)
	}
	return n, nil
}

// RangeExpr parses expr and returns the primes it covers using g.
func RangeExpr(g Generator, expr string) ([]uint64, error) {
	start, end, err := ParseRange(expr)
	if err != nil {
		return nil, err
	}
	return Range(g, start, end)
}
