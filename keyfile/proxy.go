package keyfile

import "github.com/veriscan/cryptocore/elgamal"

// PrivateKeyProxy is a refcounted handle to a KeyFile's decrypted
// private key, modeled on the reference's RAII key-access guard: the
// plaintext private key is held in memory only while at least one
// proxy referencing it is outstanding, and is scrubbed the instant the
// last one releases.
type PrivateKeyProxy struct {
	kf  *KeyFile
	key *elgamal.PrivateKey
}

// Key returns the guarded private key. The returned pointer must not
// be used after Release.
func (p *PrivateKeyProxy) Key() *elgamal.PrivateKey { return p.key }

// Release drops this handle's reference. Once the last outstanding
// proxy for a KeyFile releases, the cached plaintext is scrubbed.
func (p *PrivateKeyProxy) Release() {
	if p == nil || p.kf == nil {
		return
	}
	p.kf.release()
	p.kf = nil
	p.key = nil
}
