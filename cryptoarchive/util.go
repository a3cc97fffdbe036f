package cryptoarchive

import (
	"crypto/rand"

	"github.com/veriscan/cryptocore/cryptoerr"
)

// randomFill fills buf with random bytes, used to pad the final short
// plaintext chunk before encoding (spec §4.10: "padded with random
// bytes up to BlockSizePlain").
func randomFill(buf []byte) (int, error) {
	n, err := rand.Read(buf)
	if err != nil {
		return n, cryptoerr.Wrap(cryptoerr.KindInternalError, "fill random pad", err)
	}
	return n, nil
}
