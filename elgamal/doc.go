// Package elgamal implements the ElGamal signature scheme over a
// safe-prime group: key generation (delegating the safe-prime and
// generator search to bigint), SHA-1-based sign/verify, and the
// key-file wire format for public and private key containers (magics
// 0x7AE2C945 and 0x0D0FFA12).
package elgamal
