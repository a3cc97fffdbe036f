// Package bigint implements the arbitrary-precision signed integer type
// the crypto core builds its public-key arithmetic on: construction from
// strings, byte arrays and DER, modular rings and Montgomery
// representations, and the primality/prime-generation machinery the key
// generator needs.
//
// Internally every Int wraps a math/big.Int; the sign/limb model the
// specification describes is expressed through big.Int's own two's
// complement-free sign-magnitude representation, and this package's job
// is to pin down the exact byte-level encodings (MinEncodedSize, Encode,
// DER/BER) and the higher-level ring/primality operations on top of it.
package bigint
