package crypto

import "errors"

var (
	// ErrInvalidKeySize is returned when a key is not exactly 32 bytes.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidPrivateKeySize is returned when the private key size is invalid.
	ErrInvalidPrivateKeySize = errors.New("invalid private key size")

	// ErrInvalidPublicKeySize is returned when the public key size is invalid.
	ErrInvalidPublicKeySize = errors.New("invalid public key size")

	// ErrInvalidIVSize is returned when the AES-GCM IV size is invalid.
	ErrInvalidIVSize = errors.New("invalid IV size")

	// ErrInvalidTagSize is returned when the AES-GCM tag size is invalid.
	ErrInvalidTagSize = errors.New("invalid auth tag size")

	// ErrInvalidSaltSize is returned when a salt is not exactly 32 bytes.
	ErrInvalidSaltSize = errors.New("invalid salt size")

	// ErrEmptyPasscode is returned when an empty passcode is supplied to
	// key derivation.
	ErrEmptyPasscode = errors.New("passcode must not be empty")

	// ErrEmptyContext is returned when an empty context string is supplied
	// to key derivation.
	ErrEmptyContext = errors.New("encryption context must not be empty")

	// ErrInvalidArgon2Params is returned when Argon2id cost parameters are
	// zero or otherwise unusable.
	ErrInvalidArgon2Params = errors.New("invalid Argon2id parameters")

	// ErrDecryptionFailed is returned when AEAD authentication fails for
	// any reason: wrong key, tampered ciphertext or tag, wrong or missing
	// AAD, or a context mismatch. The causes are deliberately not
	// distinguished.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrLowOrderPoint is returned when an X25519 exchange produces an
	// all-zero shared secret, i.e. the peer public key is a low-order point.
	ErrLowOrderPoint = errors.New("invalid public key: low-order point")

	// ErrKeyConsumed is returned when a single-use envelope key is asked
	// to seal a second time.
	ErrKeyConsumed = errors.New("envelope key already consumed")

	// ErrOddLengthHex is returned when a hex string has an odd number of
	// digits.
	ErrOddLengthHex = errors.New("odd-length hex string")

	// ErrInvalidHex is returned when a string contains non-hex characters.
	ErrInvalidHex = errors.New("invalid hex string")
)
