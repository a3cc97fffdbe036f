// Package serialize implements the typed object-serialization substrate
// every persistent artifact in this module writes itself through: a
// versioned class registry, primitive big-endian reads/writes, and the
// self-describing file header that identifies an artifact's kind,
// format version, and encoding.
//
// Every multi-byte field this package puts on the wire is big-endian,
// matching the rest of the module.
package serialize
