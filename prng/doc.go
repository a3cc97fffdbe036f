// Package prng implements the module's ANSI-X9.17-style pseudo-random
// generator: a block cipher keyed by OS entropy, rekeyed/stirred with a
// clock reading each output block, matching spec §4.6. It implements
// bigint.RandomSource so prime generation and key generation can draw
// directly from it.
package prng
