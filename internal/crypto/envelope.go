package crypto

import "fmt"

// EncryptedPayload is the envelope that stands in for plaintext on the wire
// and at rest: a fresh ephemeral public key, the HKDF salt used for key
// derivation, and the AES-GCM IV/ciphertext/tag.
type EncryptedPayload struct {
	// EphemeralPublicKey is the sender's single-use X25519 public key (32 bytes).
	EphemeralPublicKey []byte
	// IV is the AES-GCM IV (16 bytes).
	IV []byte
	// Ciphertext has the same length as the plaintext.
	Ciphertext []byte
	// AuthTag is the detached AES-GCM authentication tag (16 bytes).
	AuthTag []byte
	// HKDFSalt is the salt used in key derivation (32 bytes).
	HKDFSalt []byte
}

// envelopeKey is a single-use AES key derived for exactly one envelope.
// Sealing consumes the key; a second seal fails. This makes the
// "fresh ephemeral exchange per envelope" IV-safety argument an enforced
// invariant instead of a convention.
type envelopeKey struct {
	key      []byte
	consumed bool
}

func (k *envelopeKey) seal(plaintext, aad []byte) (iv, ciphertext, authTag []byte, err error) {
	if k.consumed {
		return nil, nil, nil, ErrKeyConsumed
	}
	k.consumed = true
	defer Zero(k.key)
	return EncryptAESGCM(k.key, plaintext, aad)
}

// EncryptToPublicKey encrypts plaintext to a recipient's X25519 public key
// under the given domain-separation context.
//
// The encryption process:
//  1. Generate a fresh ephemeral X25519 keypair
//  2. ECDH between the ephemeral private key and the recipient public key
//  3. HKDF-SHA-512 key derivation with a fresh salt and info = context
//  4. AES-256-GCM encryption under the derived single-use key
func EncryptToPublicKey(recipientPublicKey, plaintext []byte, context string) (*EncryptedPayload, error) {
	if len(recipientPublicKey) != KeySize {
		return nil, ErrInvalidPublicKeySize
	}
	if context == "" {
		return nil, ErrEmptyContext
	}

	ephemeral, err := GenerateKeypair()
	if err != nil {
		return nil, fmt.Errorf("generate ephemeral keypair: %w", err)
	}
	defer Zero(ephemeral.PrivateKey)

	key, salt, err := DeriveKeyFromECDH(ephemeral.PrivateKey, recipientPublicKey, context, nil)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}

	ek := &envelopeKey{key: key}
	iv, ciphertext, authTag, err := ek.seal(plaintext, nil)
	if err != nil {
		return nil, fmt.Errorf("encrypt: %w", err)
	}

	return &EncryptedPayload{
		EphemeralPublicKey: ephemeral.PublicKey,
		IV:                 iv,
		Ciphertext:         ciphertext,
		AuthTag:            authTag,
		HKDFSalt:           salt,
	}, nil
}

// DecryptWithPrivateKey decrypts an envelope with the recipient's private
// key under the given context. The context must exactly match the one used
// at encryption time; a mismatch derives an entirely different key and
// fails authentication, indistinguishable from a wrong key.
func DecryptWithPrivateKey(privateKey []byte, payload *EncryptedPayload, context string) ([]byte, error) {
	if len(privateKey) != KeySize {
		return nil, ErrInvalidPrivateKeySize
	}
	if payload == nil {
		return nil, ErrDecryptionFailed
	}
	if len(payload.EphemeralPublicKey) != KeySize {
		return nil, ErrInvalidPublicKeySize
	}

	key, _, err := DeriveKeyFromECDH(privateKey, payload.EphemeralPublicKey, context, payload.HKDFSalt)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	defer Zero(key)

	return DecryptAESGCM(key, payload.IV, payload.Ciphertext, payload.AuthTag, nil)
}
