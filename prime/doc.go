// Package prime enumerates prime numbers over the uint64 domain.
//
// Three Generator implementations answer bounded queries for the primes in a
// closed range:
//
//   - Naive trial-divides every candidate by every integer up to its square root.
//   - Incremental remembers every prime it has verified and only classifies
//     candidates above the highest value it has already tested.
//   - Segmented sieves the range in fixed-size segments.
//
// An Iterator turns any Generator into an unbounded, strictly increasing
// sequence by requesting geometrically growing windows.
//
// # Usage
//
//	gen := prime.NewIncremental()
//	primes, err := prime.Range(gen, prime.Included(10), prime.Excluded(50))
//
//	it := prime.Iter(prime.NewNaive())
//	for p := range it.All() {
//	    if p > 100 {
//	        break
//	    }
//	    fmt.Println(p)
//	}
//
// Generators and iterators keep mutable state and must not be shared between
// goroutines without external locking.
//
// Incremental returns primes strictly below max even though it classifies max
// itself; see Incremental.Generate.
package prime
