package enclavechat

import (
	"fmt"

	"github.com/enclavechat/e2ee-go/internal/crypto"
)

// Keypair is an X25519 keypair in hex form, as handled by callers of the
// high-level API. The private key must never leave the client unwrapped.
type Keypair struct {
	PrivateKeyHex string
	PublicKeyHex  string
}

// GenerateKeypair creates a fresh X25519 keypair. Used for organization
// keys and by test harnesses standing in for the enclave.
func GenerateKeypair() (*Keypair, error) {
	keypair, err := crypto.GenerateKeypair()
	if err != nil {
		return nil, fmt.Errorf("generate keypair: %w", err)
	}
	defer crypto.Zero(keypair.PrivateKey)

	return &Keypair{
		PrivateKeyHex: crypto.ToHex(keypair.PrivateKey),
		PublicKeyHex:  crypto.ToHex(keypair.PublicKey),
	}, nil
}

// EncryptOrgKeyForMember wraps the organization private key for one member:
// an envelope addressed to the member's personal public key under the
// org-key-distribution context. An admin calls this once per member; every
// member's envelope decrypts to the identical organization key.
func EncryptOrgKeyForMember(orgPrivateKeyHex, memberPublicKeyHex string) (*EncryptedPayloadWire, error) {
	orgPrivateKey, err := crypto.KeyFromHex(orgPrivateKeyHex)
	if err != nil {
		return nil, &ValidationError{Field: "org private key", Err: err}
	}
	defer crypto.Zero(orgPrivateKey)

	return encryptTo(memberPublicKeyHex, orgPrivateKey, ContextOrgDistribution)
}

// DecryptOrgKey recovers the organization private key from a member's
// distribution envelope using that member's own private key. Any non-member
// key fails authentication.
func DecryptOrgKey(memberPrivateKeyHex string, w *EncryptedPayloadWire) (string, error) {
	orgPrivateKey, err := decryptWith(memberPrivateKeyHex, w, ContextOrgDistribution)
	if err != nil {
		return "", err
	}
	defer crypto.Zero(orgPrivateKey)

	if len(orgPrivateKey) != crypto.KeySize {
		return "", &DecryptionError{Err: crypto.ErrInvalidPrivateKeySize}
	}
	return crypto.ToHex(orgPrivateKey), nil
}
