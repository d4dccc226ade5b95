package crypto

import (
	"crypto/rand"
	"io"

	"github.com/cloudflare/circl/dh/x25519"
)

// randReader is the random source used for key, salt, and IV generation.
// It defaults to nil (which uses crypto/rand) but can be overridden for testing.
var randReader io.Reader

func reader() io.Reader {
	if randReader != nil {
		return randReader
	}
	return rand.Reader
}

// Keypair represents an X25519 keypair for key agreement.
type Keypair struct {
	// PrivateKey is the raw 32-byte X25519 private key. It must never be
	// transmitted or persisted unwrapped.
	PrivateKey []byte
	// PublicKey is the raw 32-byte X25519 public key.
	PublicKey []byte
}

// GenerateKeypair creates a new X25519 keypair from the CSPRNG.
func GenerateKeypair() (*Keypair, error) {
	var secret, public x25519.Key
	if _, err := io.ReadFull(reader(), secret[:]); err != nil {
		return nil, err
	}
	x25519.KeyGen(&public, &secret)

	return &Keypair{
		PrivateKey: append([]byte(nil), secret[:]...),
		PublicKey:  append([]byte(nil), public[:]...),
	}, nil
}

// KeypairFromPrivateKey reconstructs a keypair from a raw private key.
// The public key is recomputed from the curve base point.
func KeypairFromPrivateKey(privateKey []byte) (*Keypair, error) {
	if len(privateKey) != KeySize {
		return nil, ErrInvalidPrivateKeySize
	}

	var secret, public x25519.Key
	copy(secret[:], privateKey)
	x25519.KeyGen(&public, &secret)

	return &Keypair{
		PrivateKey: append([]byte(nil), privateKey...),
		PublicKey:  append([]byte(nil), public[:]...),
	}, nil
}

// SharedSecret computes the raw X25519 shared secret between a private key
// and a peer public key. The result must not be used as a symmetric key
// directly; pass it through [DeriveKey] first.
func SharedSecret(privateKey, publicKey []byte) ([]byte, error) {
	if len(privateKey) != KeySize {
		return nil, ErrInvalidPrivateKeySize
	}
	if len(publicKey) != KeySize {
		return nil, ErrInvalidPublicKeySize
	}

	var secret, public, shared x25519.Key
	copy(secret[:], privateKey)
	copy(public[:], publicKey)
	if !x25519.Shared(&shared, &secret, &public) {
		return nil, ErrLowOrderPoint
	}

	return append([]byte(nil), shared[:]...), nil
}

// Zero overwrites a byte slice with zeros. Callers use it to scrub key
// material once it is no longer needed.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
