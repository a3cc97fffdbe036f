package bigint

import (
	"github.com/veriscan/cryptocore/cryptoerr"
)

// MinEncodedSize returns the minimum byte count such that Decode, fed
// exactly that many bytes, recovers a under the given signedness.
func (a *Int) MinEncodedSize(sign Signedness) int {
	if a.IsZero() {
		return 1
	}
	bytes := (a.BitLen() + 7) / 8
	if sign == Unsigned {
		return bytes
	}

	// SIGNED: need a leading bit that matches the sign, possibly one
	// extra byte if the magnitude's top bit would otherwise collide
	// with the sign bit of a two's-complement encoding.
	if a.Sign() > 0 {
		if a.BitLen()%8 == 0 {
			return bytes + 1
		}
		return bytes
	}
	// Negative: magnitude - 1 must fit in (bytes*8 - 1) bits for "bytes"
	// to already carry the sign correctly.
	magMinus1 := a.Abs().Sub(FromInt64(1))
	if magMinus1.BitLen() >= bytes*8 {
		return bytes + 1
	}
	return bytes
}

// Encode writes a as a big-endian byte string into a freshly allocated
// buffer of exactly length bytes, left-padding with 0x00 (non-negative)
// or 0xFF (negative, SIGNED) as needed. length must be >= MinEncodedSize.
func (a *Int) Encode(length int, sign Signedness) ([]byte, error) {
	min := a.MinEncodedSize(sign)
	if length < min {
		return nil, cryptoerr.InvalidArgument("length", "shorter than MinEncodedSize")
	}

	buf := make([]byte, length)
	if sign == Unsigned || a.Sign() >= 0 {
		mag := a.Abs().v.Bytes()
		copy(buf[length-len(mag):], mag)
		return buf, nil
	}

	// Negative, SIGNED: two's complement over `length` bytes.
	// value = 2^(8*length) + a  (a is negative, so this subtracts |a|)
	mod := FromInt64(1).Lsh(uint(8 * length))
	twosComp := mod.Add(a)
	mag := twosComp.v.Bytes()
	for i := range buf {
		buf[i] = 0xFF
	}
	copy(buf[length-len(mag):], mag)
	return buf, nil
}

// Decode is the inverse of Encode: it interprets buf as a big-endian
// encoding of the given signedness.
func Decode(buf []byte, sign Signedness) *Int {
	return FromBytes(buf, sign)
}

// derTagInteger is the ASN.1 universal tag for INTEGER.
const derTagInteger = 0x02

// DEREncode wraps the unsigned-two's-complement SIGNED encoding of a in
// an ASN.1 INTEGER TLV: tag 0x02, a length (short-form for < 128, else
// long-form), and the SIGNED-minimal content bytes.
func (a *Int) DEREncode() []byte {
	content, _ := a.Encode(a.MinEncodedSize(Signed), Signed)

	var out []byte
	out = append(out, derTagInteger)
	out = append(out, encodeDERLength(len(content))...)
	out = append(out, content...)
	return out
}

func encodeDERLength(n int) []byte {
	if n < 128 {
		return []byte{byte(n)}
	}
	// Long form: first byte is 0x80 | num-length-bytes, followed by the
	// big-endian length bytes themselves.
	var lenBytes []byte
	for v := n; v > 0; v >>= 8 {
		lenBytes = append([]byte{byte(v)}, lenBytes...)
	}
	return append([]byte{0x80 | byte(len(lenBytes))}, lenBytes...)
}

// BERDecode reads one ASN.1 INTEGER TLV from the front of buf and
// returns the decoded value plus the number of bytes consumed. Lengths
// requiring more than 2 length-bytes are rejected as malformed, per the
// spec's BERDecode contract.
func BERDecode(buf []byte) (*Int, int, error) {
	if len(buf) < 2 {
		return nil, 0, cryptoerr.DecodeError("BER integer truncated before tag/length")
	}
	if buf[0] != derTagInteger {
		return nil, 0, cryptoerr.DecodeError("BER integer has wrong tag")
	}

	first := buf[1]
	pos := 2
	var length int
	if first&0x80 == 0 {
		length = int(first)
	} else {
		numLenBytes := int(first &^ 0x80)
		if numLenBytes > 2 {
			return nil, 0, cryptoerr.DecodeError("BER integer length-of-length exceeds 2 bytes")
		}
		if len(buf) < pos+numLenBytes {
			return nil, 0, cryptoerr.DecodeError("BER integer truncated in long-form length")
		}
		for i := 0; i < numLenBytes; i++ {
			length = (length << 8) | int(buf[pos+i])
		}
		pos += numLenBytes
	}

	if len(buf) < pos+length {
		return nil, 0, cryptoerr.DecodeError("BER integer content truncated")
	}
	content := buf[pos : pos+length]
	return FromBytes(content, Signed), pos + length, nil
}
