package bigint

import "github.com/veriscan/cryptocore/cryptoerr"

// RandomKind selects the rejection-sampling predicate RandomInRange
// applies to freshly drawn candidates.
type RandomKind int

const (
	// Any accepts the first candidate drawn.
	Any RandomKind = iota
	// Odd accepts only odd candidates.
	Odd
	// Prime accepts only probable primes (20 Miller-Rabin rounds).
	Prime
	// Blum accepts only primes congruent to 3 mod 4.
	Blum
)

// RandomInRange draws a uniform value in [min, max] satisfying kind,
// using rejection sampling: candidates are drawn uniformly over the
// range and retried until one satisfies the predicate.
func RandomInRange(min, max *Int, kind RandomKind, rnd RandomSource) (*Int, error) {
	if min.Cmp(max) > 0 {
		return nil, cryptoerr.InvalidArgument("min", "greater than max")
	}
	span := max.Sub(min).Add(FromInt64(1))
	bits := span.BitLen()

	for {
		raw, err := RandomBits(bits, rnd)
		if err != nil {
			return nil, err
		}
		if raw.Cmp(span) >= 0 {
			continue
		}
		candidate := raw.Add(min)

		switch kind {
		case Any:
			return candidate, nil
		case Odd:
			if candidate.GetBit(0) == 1 {
				return candidate, nil
			}
		case Prime:
			if IsProbablePrime(candidate, 20) {
				return candidate, nil
			}
		case Blum:
			if IsProbablePrime(candidate, 20) {
				m, _ := candidate.Mod(FromInt64(4))
				if m.Equal(FromInt64(3)) {
					return candidate, nil
				}
			}
		}
	}
}

// RandomBitsFrom draws a uniform value in [0, 2^bits) (the top bit is
// not forced) via its RandomSource, an exported alias kept for callers
// constructing keys directly from a bit-length rather than a range.
func RandomBitsFrom(bits int, rnd RandomSource) (*Int, error) {
	return RandomBits(bits, rnd)
}
