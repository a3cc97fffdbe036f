package keyfile

import (
	"bytes"

	"github.com/veriscan/cryptocore/cryptoerr"
	"github.com/veriscan/cryptocore/elgamal"
	"github.com/veriscan/cryptocore/serialize"
)

// Magic is the key-file's own outer magic, reused as both the leading
// identifier and the separator before the private-key section, per
// spec §6's "magic(32) ... magic(32, separator)".
const Magic uint32 = 0x47444B59 // "GDKY", matching serialize.MagicKeyFile

// FormatVersionMajor/Minor describe this package's on-disk layout.
const (
	FormatVersionMajor uint16 = 1
	FormatVersionMinor uint16 = 0
)

// encodeLayout renders the exact byte layout spec §6 pins down:
// magic(32) || version-major(16) || version-minor(16) ||
// pub-key-len(16) || pub-key-bytes || magic(32, separator) ||
// priv-key-len(16) || priv-key-bytes.
func encodeLayout(pubBytes, encryptedPrivBytes []byte) ([]byte, error) {
	if len(pubBytes) > 0xFFFF || len(encryptedPrivBytes) > 0xFFFF {
		return nil, cryptoerr.New(cryptoerr.KindInvalidArgument, "key section too large for a 16-bit length field", nil, 0)
	}

	var buf bytes.Buffer
	w := serialize.NewWriter(&buf)
	w.WriteUint32(Magic)
	w.WriteUint16(FormatVersionMajor)
	w.WriteUint16(FormatVersionMinor)
	w.WriteUint16(uint16(len(pubBytes)))
	w.WriteBlob(pubBytes)
	w.WriteUint32(Magic)
	w.WriteUint16(uint16(len(encryptedPrivBytes)))
	w.WriteBlob(encryptedPrivBytes)
	if w.Err() != nil {
		return nil, w.Err()
	}
	return buf.Bytes(), nil
}

// decodeLayout is the inverse of encodeLayout.
func decodeLayout(data []byte) (pubBytes, encryptedPrivBytes []byte, err error) {
	r := serialize.NewReader(bytes.NewReader(data))

	magic, err := r.ReadUint32()
	if err != nil {
		return nil, nil, err
	}
	if magic != Magic {
		return nil, nil, cryptoerr.BadMagic(Magic, magic)
	}
	if _, err := r.ReadUint16(); err != nil { // version-major
		return nil, nil, err
	}
	if _, err := r.ReadUint16(); err != nil { // version-minor
		return nil, nil, err
	}

	pubLen, err := r.ReadUint16()
	if err != nil {
		return nil, nil, err
	}
	pubBytes, err = r.ReadBlob(int(pubLen))
	if err != nil {
		return nil, nil, err
	}

	sepMagic, err := r.ReadUint32()
	if err != nil {
		return nil, nil, err
	}
	if sepMagic != Magic {
		return nil, nil, cryptoerr.BadMagic(Magic, sepMagic)
	}

	privLen, err := r.ReadUint16()
	if err != nil {
		return nil, nil, err
	}
	encryptedPrivBytes, err = r.ReadBlob(int(privLen))
	if err != nil {
		return nil, nil, err
	}
	return pubBytes, encryptedPrivBytes, nil
}

// validateBits enforces the two accepted key sizes, spec §4.12.
func validateBits(bits int) error {
	if bits != 1024 && bits != 2048 {
		return cryptoerr.InvalidKeySize(bits)
	}
	return nil
}

// publicKeyBytes and privateKeyBytes are thin aliases kept local to
// this package so format.go doesn't need to import elgamal's exported
// marshal functions under a different name than the rest of the
// package uses them.
func publicKeyBytes(pub *elgamal.PublicKey) []byte  { return elgamal.MarshalPublicKey(pub) }
func privateKeyBytes(priv *elgamal.PrivateKey) []byte { return elgamal.MarshalPrivateKey(priv) }
