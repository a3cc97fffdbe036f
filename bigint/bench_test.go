package bigint

import "testing"

// BenchmarkRingExponentiate measures modular exponentiation at a key
// size representative of a 1024-bit ElGamal modulus, the operation
// that dominates sign/verify cost (spec §4.9).
func BenchmarkRingExponentiate(b *testing.B) {
	p, _ := FromString("ffffffffffffffffc90fdaa22168c234c4c6628b80dc1cd129024e088a67cc74020bbea63b139b22514a08798e3404ddef9519b3cd3a431b302b0a6df25f14374fe1356d6d51c245e485b576625e7ec6f44c42e9a637ed6b0bff5cb6f406b7edee386bfb5a899fa5ae9f24117c4b1fe649286651ece45b3dc2007cb8a163bf0598da48361c55d39a69163fa8fd24cf5f83655d23dca3ad961c62f356208552bb9ed529077096966d670c354e4abc9804f1746c08ca237327ffffffffffffffffh")
	ring, err := NewRing(p)
	if err != nil {
		b.Fatalf("NewRing: %v", err)
	}
	base := FromInt64(5)
	exp, _ := FromString("e2f2c6599e112a78f7f9d3a469bc01c9c3c10a4ah")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ring.Exponentiate(base, exp)
	}
}

// BenchmarkMontgomeryExponentiate measures the same operation through
// the Montgomery representation, the form GenerateSafePrime and
// elgamal.Sign actually exercise internally.
func BenchmarkMontgomeryExponentiate(b *testing.B) {
	p, _ := FromString("ffffffffffffffffc90fdaa22168c234c4c6628b80dc1cd129024e088a67cc74020bbea63b139b22514a08798e3404ddef9519b3cd3a431b302b0a6df25f14374fe1356d6d51c245e485b576625e7ec6f44c42e9a637ed6b0bff5cb6f406b7edee386bfb5a899fa5ae9f24117c4b1fe649286651ece45b3dc2007cb8a163bf0598da48361c55d39a69163fa8fd24cf5f83655d23dca3ad961c62f356208552bb9ed529077096966d670c354e4abc9804f1746c08ca237327ffffffffffffffffh")
	mont, err := NewMontgomeryRing(p)
	if err != nil {
		b.Fatalf("NewMontgomeryRing: %v", err)
	}
	base := mont.ConvertIn(FromInt64(5))
	exp, _ := FromString("e2f2c6599e112a78f7f9d3a469bc01c9c3c10a4ah")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mont.ConvertOut(mont.Exponentiate(base, exp))
	}
}

// BenchmarkMulKaratsuba exercises the recursive multiplier at a size
// where the Karatsuba split engages (spec §4.3).
func BenchmarkMulKaratsuba(b *testing.B) {
	a, _ := FromString("ffffffffffffffffc90fdaa22168c234c4c6628b80dc1cd129024e088a67cc74020bbeh")
	c, _ := FromString("e2f2c6599e112a78f7f9d3a469bc01c9c3c10a4ae2f2c6599e112a78f7f9d3a469bc01ch")
	// Widen both operands to over 2800 bits, past the size at which
	// math/big switches from schoolbook to Karatsuba multiplication.
	a = a.Lsh(2560).Add(a)
	c = c.Lsh(2560).Add(c)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a.Mul(c)
	}
}
