// Package block implements the module's symmetric block cipher
// contract: a Triple-DES (EDE) single-block cipher over crypto/des (no
// third-party classical-DES implementation appears anywhere in the
// retrieved pack, so this is the package's one deliberate stdlib
// choice, recorded in DESIGN.md), a null cipher that preserves framing
// without encrypting, and the SHA-1-chained key-derivation helper the
// key-file format uses to turn a passphrase into a 192-bit key.
package block
