package serialize

import (
	"fmt"
)

// EncodingTag identifies how an artifact's body is protected past the
// file header.
type EncodingTag uint8

const (
	// EncodingNone means the body follows the header as-is.
	EncodingNone EncodingTag = iota
	// EncodingCompressed means the body is compressed but not signed or
	// encrypted (the null crypto archive facade).
	EncodingCompressed
	// EncodingAsymmetricSigned means the body is compressed and signed;
	// an embedded public key identifies the signer.
	EncodingAsymmetricSigned
)

func (t EncodingTag) String() string {
	switch t {
	case EncodingNone:
		return "none"
	case EncodingCompressed:
		return "compressed"
	case EncodingAsymmetricSigned:
		return "asymmetric-signed"
	default:
		return fmt.Sprintf("encoding(%d)", uint8(t))
	}
}

// Magic values distinguish the artifact kind a FileHeader introduces.
const (
	MagicDatabase      uint32 = 0x47445442 // "GDTB"
	MagicReport        uint32 = 0x47445052 // "GDPR"
	MagicConfiguration uint32 = 0x47444346 // "GDCF"
	MagicPolicy        uint32 = 0x47445043 // "GDPC"
	MagicKeyFile       uint32 = 0x47444B59 // "GDKY"
)

// Version packs major.minor.patch.build into a single 32-bit field, one
// byte each, high to low.
type Version uint32

// NewVersion packs four byte-sized components into a Version.
func NewVersion(major, minor, patch, build uint8) Version {
	return Version(uint32(major)<<24 | uint32(minor)<<16 | uint32(patch)<<8 | uint32(build))
}

func (v Version) Major() uint8 { return uint8(v >> 24) }
func (v Version) Minor() uint8 { return uint8(v >> 16) }
func (v Version) Patch() uint8 { return uint8(v >> 8) }
func (v Version) Build() uint8 { return uint8(v) }

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major(), v.Minor(), v.Patch(), v.Build())
}

// FileHeader is the self-describing preamble every artifact this module
// produces (database, report, configuration, policy) carries: what kind
// of artifact it is, what format version produced it, and how the body
// past the header is protected.
//
// EmbeddedPublicKey is only present (non-empty) when Encoding is
// EncodingAsymmetricSigned; it is opaque to this package — callers
// encode/decode it with the signer's own marshaling (see the elgamal
// and keyfile packages).
type FileHeader struct {
	Magic             uint32
	Version           Version
	Encoding          EncodingTag
	EmbeddedPublicKey []byte
}

// NewFileHeader builds a header for the given artifact kind and version
// with no embedded key (EncodingNone).
func NewFileHeader(magic uint32, version Version) *FileHeader {
	return &FileHeader{Magic: magic, Version: version, Encoding: EncodingNone}
}

// WithSigner attaches an embedded public key and sets the encoding tag
// to EncodingAsymmetricSigned.
func (h *FileHeader) WithSigner(publicKeyBytes []byte) *FileHeader {
	h.Encoding = EncodingAsymmetricSigned
	h.EmbeddedPublicKey = publicKeyBytes
	return h
}

// WithCompression sets the encoding tag to EncodingCompressed (no
// embedded key).
func (h *FileHeader) WithCompression() *FileHeader {
	h.Encoding = EncodingCompressed
	h.EmbeddedPublicKey = nil
	return h
}

// WriteTo serializes the header: magic(32) || version(32) ||
// encoding(8), plus a length-prefixed embedded key when the encoding
// calls for one.
func (h *FileHeader) WriteTo(w *Writer) error {
	w.WriteUint32(h.Magic)
	w.WriteUint32(uint32(h.Version))
	w.WriteByte(byte(h.Encoding))
	if h.Encoding == EncodingAsymmetricSigned {
		w.WriteLenBlob(h.EmbeddedPublicKey)
	}
	return w.Err()
}

// ReadFrom parses a header previously written by WriteTo.
func (h *FileHeader) ReadFrom(r *Reader) error {
	magic, err := r.ReadUint32()
	if err != nil {
		return err
	}
	version, err := r.ReadUint32()
	if err != nil {
		return err
	}
	encByte, err := r.ReadByte()
	if err != nil {
		return err
	}
	enc := EncodingTag(encByte)
	if enc > EncodingAsymmetricSigned {
		return fmt.Errorf("serialize: invalid encoding tag %d", encByte)
	}

	h.Magic = magic
	h.Version = Version(version)
	h.Encoding = enc
	h.EmbeddedPublicKey = nil

	if enc == EncodingAsymmetricSigned {
		key, err := r.ReadLenBlob()
		if err != nil {
			return err
		}
		h.EmbeddedPublicKey = key
	}
	return nil
}

// MatchesMagic reports whether h's magic equals expected.
func (h *FileHeader) MatchesMagic(expected uint32) bool {
	return h.Magic == expected
}
