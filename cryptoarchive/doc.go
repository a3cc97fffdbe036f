// Package cryptoarchive implements the streaming crypto-archive stack:
// a compression filter over github.com/klauspost/compress/flate (the
// retrieval pack's faster RFC1951-compatible drop-in for the
// standard library, grounded in the broader corpus's manifests), the
// write/read state machine of spec §4.10, and the null/symmetric/
// signing façades built on top of it.
package cryptoarchive
