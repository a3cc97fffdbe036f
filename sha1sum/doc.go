// Package sha1sum adapts the standard library's crypto/sha1
// implementation to the module's own streaming Hasher contract: no
// third-party Go package in the retrieved examples implements SHA-1
// (the pack's hash work is all SHA-2/3, BLAKE2, or domain-specific), so
// this is one of the components DESIGN.md documents as a deliberate
// stdlib choice.
package sha1sum
