package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != AESKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), AESKeySize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	// The wire format fixes a 16-byte IV, not GCM's 12-byte default.
	return cipher.NewGCMWithNonceSize(block, IVSize)
}

// EncryptAESGCM encrypts plaintext with AES-256-GCM under a fresh random
// 16-byte IV. The authentication tag is returned detached. AAD, if given,
// is authenticated but not concealed. Ciphertext length always equals
// plaintext length.
func EncryptAESGCM(key, plaintext, aad []byte) (iv, ciphertext, authTag []byte, err error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, nil, nil, err
	}

	iv, err = GenerateIV()
	if err != nil {
		return nil, nil, nil, err
	}

	sealed := gcm.Seal(nil, iv, plaintext, aad)
	ciphertext = sealed[:len(sealed)-TagSize]
	authTag = sealed[len(sealed)-TagSize:]

	return iv, ciphertext, authTag, nil
}

// DecryptAESGCM decrypts AES-256-GCM ciphertext with a detached tag.
// Any mismatch -- wrong key, tampered ciphertext or tag, wrong or missing
// AAD -- returns ErrDecryptionFailed and no plaintext.
func DecryptAESGCM(key, iv, ciphertext, authTag, aad []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if len(iv) != IVSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidIVSize, len(iv), IVSize)
	}
	if len(authTag) != TagSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidTagSize, len(authTag), TagSize)
	}

	sealed := make([]byte, 0, len(ciphertext)+TagSize)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, authTag...)

	plaintext, err := gcm.Open(nil, iv, sealed, aad)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	return plaintext, nil
}
