package bigint

import (
	"math/big"
	"sync"

	"github.com/veriscan/cryptocore/cryptoerr"
)

// smallPrimes552 holds the first 552 primes, built at package init.
// Trial division does not read it: TrialDivide always uses the full
// smallPrimesMax (3511-prime) table, which smallPrimeTable builds from
// scratch on its first call behind primeTableOnce; sync.Once also makes
// that first build safe for concurrent callers (see DESIGN.md's Open
// Question decision on this).
var smallPrimes552 = sieveFirstNPrimes(552)

const smallPrimesMax = 3511

var (
	primeTableOnce  sync.Once
	smallPrimesFull []uint32
)

func sieveFirstNPrimes(n int) []uint32 {
	primes := make([]uint32, 0, n)
	candidate := uint32(2)
	for len(primes) < n {
		isPrime := true
		for _, p := range primes {
			if uint64(p)*uint64(p) > uint64(candidate) {
				break
			}
			if candidate%p == 0 {
				isPrime = false
				break
			}
		}
		if isPrime {
			primes = append(primes, candidate)
		}
		candidate++
	}
	return primes
}

// smallPrimeTable returns the table of the first smallPrimesMax primes,
// building it on the first call.
func smallPrimeTable() []uint32 {
	primeTableOnce.Do(func() {
		smallPrimesFull = sieveFirstNPrimes(smallPrimesMax)
	})
	return smallPrimesFull
}

// TrialDivide reports whether n has any factor in the small-prime
// table, and if so, which one. It is the fast-reject first stage of
// IsProbablePrime.
func TrialDivide(n *Int) (divisor uint32, composite bool) {
	abs := n.Abs()
	for _, p := range smallPrimeTable() {
		pb := FromUint64(uint64(p))
		if abs.Cmp(pb) == 0 {
			return 0, false
		}
		m, _ := abs.Mod(pb)
		if m.IsZero() {
			return p, true
		}
	}
	return 0, false
}

// IsProbablePrime runs trial division by the small-prime table followed
// by math/big's Miller-Rabin/Baillie-PSW implementation (the reference
// couples a base-2 strong-probable-prime test with a strong-Lucas
// check; ProbablyPrime(20) performs an equivalent Miller-Rabin round
// count plus the Baillie-PSW-style Lucas test math/big applies for
// n > 0).
func IsProbablePrime(n *Int, rounds int) bool {
	if n.Sign() <= 0 {
		return false
	}
	if _, composite := TrialDivide(n); composite {
		return false
	}
	return n.v.ProbablyPrime(rounds)
}

// NextPrime returns the smallest probable prime strictly greater than
// p, not exceeding max (if max is non-nil). When blumInt is true, the
// search is restricted to primes congruent to 3 mod 4 (Blum integers'
// prime factors).
func NextPrime(p *Int, max *Int, blumInt bool) (*Int, error) {
	two := FromInt64(2)
	if p.Cmp(two) < 0 && !blumInt {
		// 2 is the only even prime; the odd-only search below skips it.
		if max != nil && two.Cmp(max) > 0 {
			return nil, cryptoerr.New(cryptoerr.KindInvalidArgument, "no prime found before max", nil, 0)
		}
		return two, nil
	}
	candidate := p.Add(FromInt64(1))
	if candidate.GetBit(0) == 0 {
		candidate = candidate.Add(FromInt64(1))
	}
	four := FromInt64(4)
	three := FromInt64(3)
	for {
		if max != nil && candidate.Cmp(max) > 0 {
			return nil, cryptoerr.New(cryptoerr.KindInvalidArgument, "no prime found before max", nil, 0)
		}
		ok := IsProbablePrime(candidate, 20)
		if ok && blumInt {
			m, _ := candidate.Mod(four)
			ok = m.Equal(three)
		}
		if ok {
			return candidate, nil
		}
		candidate = candidate.Add(FromInt64(2))
	}
}

// GenerateSafePrime returns (p = 2q+1, q, g) with q prime, p prime,
// and g a generator of the order-q subgroup of Z/p*, using the smallest
// quadratic residue with delta=+1 that is not 1 itself.
func GenerateSafePrime(bits int, rnd RandomSource) (p, q, g *Int, err error) {
	if bits < 8 {
		return nil, nil, nil, cryptoerr.InvalidArgument("bits", "too small for a safe prime")
	}
	for {
		q, err = randomPrimeCandidate(bits-1, rnd)
		if err != nil {
			return nil, nil, nil, err
		}
		p = q.Mul(FromInt64(2)).Add(FromInt64(1))
		if IsProbablePrime(p, 20) {
			break
		}
	}

	g, err = findGenerator(p, q)
	if err != nil {
		return nil, nil, nil, err
	}
	return p, q, g, nil
}

// findGenerator returns the smallest g in [2, p) whose order is q,
// i.e. g^q mod p == 1 and g != 1, for a safe prime p = 2q+1.
func findGenerator(p, q *Int) (*Int, error) {
	ring, err := NewRing(p)
	if err != nil {
		return nil, err
	}
	for candidate := int64(2); candidate < 1000; candidate++ {
		g := FromInt64(candidate)
		if ring.Exponentiate(g, q).Equal(FromInt64(1)) && !g.Equal(FromInt64(1)) {
			// Also exclude order-2 elements (g^2 == 1) which would make
			// the subgroup generated too small.
			if !ring.Exponentiate(g, FromInt64(2)).Equal(FromInt64(1)) {
				return g, nil
			}
		}
	}
	return nil, cryptoerr.New(cryptoerr.KindInternalError, "no small generator found for safe prime", nil, 0)
}

// RandomSource supplies uniformly random bytes; prng.Generator and
// crypto/rand.Reader both satisfy an equivalent contract via the
// adapter in the prng package.
type RandomSource interface {
	ReadRandom(buf []byte) error
}

// randomPrimeCandidate draws random odd bit-length integers and returns
// the first probable prime, matching the constrained-randomization
// contract in spec §4.3 (type PRIME).
func randomPrimeCandidate(bits int, rnd RandomSource) (*Int, error) {
	for {
		n, err := RandomBits(bits, rnd)
		if err != nil {
			return nil, err
		}
		n = n.SetBit(0, 1)
		n = n.SetBit(uint(bits-1), 1)
		if IsProbablePrime(n, 20) {
			return n, nil
		}
	}
}

// RandomBits returns a uniform value in [0, 2^bits) drawn from rnd.
func RandomBits(bits int, rnd RandomSource) (*Int, error) {
	nbytes := (bits + 7) / 8
	buf := make([]byte, nbytes)
	if err := rnd.ReadRandom(buf); err != nil {
		return nil, err
	}
	if extra := nbytes*8 - bits; extra > 0 {
		buf[0] &= 0xFF >> uint(extra)
	}
	v := new(big.Int).SetBytes(buf)
	return FromBig(v), nil
}
