package crypto

import (
	"crypto/sha512"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// DeriveKey derives a key using HKDF-SHA-512.
//
// Parameters:
//   - secret: the input key material (e.g., an ECDH shared secret)
//   - salt: optional salt value; if empty, a zero-filled salt is used
//   - info: context/application-specific info for domain separation
//   - length: desired output key length in bytes
func DeriveKey(secret, salt, info []byte, length int) ([]byte, error) {
	if len(salt) == 0 {
		salt = make([]byte, sha512.Size)
	}

	reader := hkdf.New(sha512.New, secret, salt, info)
	key := make([]byte, length)

	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}

	return key, nil
}

// DeriveKeyFromECDH performs an X25519 exchange between privateKey and
// publicKey and derives a 32-byte AES key from the shared secret with
// HKDF-SHA-512, using the context string as the info parameter.
//
// When salt is nil a fresh 32-byte salt is generated (sender side) and
// returned alongside the key so it can travel with the envelope. When salt
// is supplied it is used verbatim (receiver side).
func DeriveKeyFromECDH(privateKey, publicKey []byte, context string, salt []byte) (key, usedSalt []byte, err error) {
	if context == "" {
		return nil, nil, ErrEmptyContext
	}
	if salt == nil {
		if salt, err = GenerateSalt(); err != nil {
			return nil, nil, err
		}
	} else if len(salt) != SaltSize {
		return nil, nil, ErrInvalidSaltSize
	}

	shared, err := SharedSecret(privateKey, publicKey)
	if err != nil {
		return nil, nil, err
	}
	defer Zero(shared)

	key, err = DeriveKey(shared, salt, []byte(context), AESKeySize)
	if err != nil {
		return nil, nil, err
	}

	return key, salt, nil
}
