package elgamal

import (
	"bytes"

	"github.com/veriscan/cryptocore/bigint"
	"github.com/veriscan/cryptocore/cryptoerr"
	"github.com/veriscan/cryptocore/serialize"
)

// Container magics for the public- and private-key byte blobs inside a
// key file, per spec §6.
const (
	MagicPublicKey  uint32 = 0x7AE2C945
	MagicPrivateKey uint32 = 0x0D0FFA12
)

func writeFramedInt(w *serialize.Writer, v *bigint.Int) {
	b, err := v.Encode(v.MinEncodedSize(bigint.Unsigned), bigint.Unsigned)
	if err != nil {
		// v.MinEncodedSize(v) is always a legal length for Encode; this
		// branch exists only for the compiler, not a reachable failure.
		return
	}
	w.WriteLenBlob(b)
}

func readFramedInt(r *serialize.Reader) (*bigint.Int, error) {
	b, err := r.ReadLenBlob()
	if err != nil {
		return nil, err
	}
	return bigint.Decode(b, bigint.Unsigned), nil
}

// MarshalPublicKey renders pub as
// key-length-in-bits(16) || magic(32) || p || q || g || y, each of
// p, q, g, y framed as 32-bit length || big-endian unsigned bytes.
func MarshalPublicKey(pub *PublicKey) []byte {
	var buf bytes.Buffer
	w := serialize.NewWriter(&buf)
	w.WriteUint16(uint16(pub.BitLen()))
	w.WriteUint32(MagicPublicKey)
	writeFramedInt(w, pub.P)
	writeFramedInt(w, pub.Q)
	writeFramedInt(w, pub.G)
	writeFramedInt(w, pub.Y)
	return buf.Bytes()
}

// UnmarshalPublicKey is the inverse of MarshalPublicKey.
func UnmarshalPublicKey(data []byte) (*PublicKey, error) {
	r := serialize.NewReader(bytes.NewReader(data))
	if _, err := r.ReadUint16(); err != nil {
		return nil, err
	}
	magic, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	if magic != MagicPublicKey {
		return nil, cryptoerr.BadMagic(MagicPublicKey, magic)
	}

	p, err := readFramedInt(r)
	if err != nil {
		return nil, err
	}
	q, err := readFramedInt(r)
	if err != nil {
		return nil, err
	}
	g, err := readFramedInt(r)
	if err != nil {
		return nil, err
	}
	y, err := readFramedInt(r)
	if err != nil {
		return nil, err
	}
	if err := validateKeyShape(p, q, g, y); err != nil {
		return nil, err
	}
	return &PublicKey{P: p, Q: q, G: g, Y: y}, nil
}

// MarshalPrivateKey renders priv the same way as MarshalPublicKey but
// under the private-key magic and with x appended after y.
func MarshalPrivateKey(priv *PrivateKey) []byte {
	var buf bytes.Buffer
	w := serialize.NewWriter(&buf)
	w.WriteUint16(uint16(priv.P.BitLen()))
	w.WriteUint32(MagicPrivateKey)
	writeFramedInt(w, priv.P)
	writeFramedInt(w, priv.Q)
	writeFramedInt(w, priv.G)
	writeFramedInt(w, priv.Y)
	writeFramedInt(w, priv.X)
	return buf.Bytes()
}

// UnmarshalPrivateKey is the inverse of MarshalPrivateKey.
func UnmarshalPrivateKey(data []byte) (*PrivateKey, error) {
	r := serialize.NewReader(bytes.NewReader(data))
	if _, err := r.ReadUint16(); err != nil {
		return nil, err
	}
	magic, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	if magic != MagicPrivateKey {
		return nil, cryptoerr.BadMagic(MagicPrivateKey, magic)
	}

	p, err := readFramedInt(r)
	if err != nil {
		return nil, err
	}
	q, err := readFramedInt(r)
	if err != nil {
		return nil, err
	}
	g, err := readFramedInt(r)
	if err != nil {
		return nil, err
	}
	y, err := readFramedInt(r)
	if err != nil {
		return nil, err
	}
	x, err := readFramedInt(r)
	if err != nil {
		return nil, err
	}
	if err := validateKeyShape(p, q, g, y); err != nil {
		return nil, err
	}
	return &PrivateKey{P: p, Q: q, G: g, Y: y, X: x}, nil
}
