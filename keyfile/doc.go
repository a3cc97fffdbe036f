// Package keyfile implements the on-disk key-file format of spec
// §4.12/§6: a plaintext public key, a passphrase-protected private
// key, the passphrase-change protocol, and a refcounted
// PrivateKeyProxy guarding decrypted private-key material.
package keyfile
