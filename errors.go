package enclavechat

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrIncorrectPasscode is returned whenever unlocking wrapped key
	// material fails authentication. Wrong passcode, wrong recovery code,
	// and corrupted stored material all surface as this one error so an
	// attacker cannot distinguish the cases.
	ErrIncorrectPasscode = errors.New("incorrect passcode")

	// ErrPasscodeTooShort is returned when a passcode has fewer than 6 characters.
	ErrPasscodeTooShort = errors.New("passcode must be at least 6 characters")

	// ErrRecoveryKeysNotAvailable is returned when recovery-based unlock is
	// requested but the stored material has no recovery fields.
	ErrRecoveryKeysNotAvailable = errors.New("recovery keys not available")

	// ErrDecryptionFailed is returned when envelope decryption fails:
	// wrong private key, tampered envelope, or mismatched context.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidInput is returned for malformed inputs: wrong key/salt/IV/tag
	// lengths, odd-length hex, or an unknown message role.
	ErrInvalidInput = errors.New("invalid input")

	// ErrKeyDestroyed is returned when an UnlockedKey is used after Destroy.
	ErrKeyDestroyed = errors.New("unlocked key has been destroyed")
)

// EnclaveChatError is implemented by all errors produced by this package.
type EnclaveChatError interface {
	error
	EnclaveChatError() // marker method
}

// ValidationError reports malformed input. It is returned synchronously,
// before any cryptographic work happens.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("validation failed: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// EnclaveChatError implements the EnclaveChatError interface.
func (e *ValidationError) EnclaveChatError() {}

// AuthenticationError reports an AEAD authentication failure in the unlock
// path. It deliberately carries no detail: wrong-secret and corrupted-data
// failures must be indistinguishable.
type AuthenticationError struct{}

func (e *AuthenticationError) Error() string {
	return ErrIncorrectPasscode.Error()
}

// Is implements errors.Is for sentinel error matching.
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrIncorrectPasscode
}

// EnclaveChatError implements the EnclaveChatError interface.
func (e *AuthenticationError) EnclaveChatError() {}

// MissingMaterialError reports absent recovery fields when recovery-based
// decryption is requested.
type MissingMaterialError struct {
	Field string
}

func (e *MissingMaterialError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: missing %s", ErrRecoveryKeysNotAvailable.Error(), e.Field)
	}
	return ErrRecoveryKeysNotAvailable.Error()
}

// Is implements errors.Is for sentinel error matching.
func (e *MissingMaterialError) Is(target error) bool {
	return target == ErrRecoveryKeysNotAvailable
}

// EnclaveChatError implements the EnclaveChatError interface.
func (e *MissingMaterialError) EnclaveChatError() {}

// DecryptionError reports a failure to decrypt an envelope.
type DecryptionError struct {
	Err error
}

func (e *DecryptionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decryption failed: %v", e.Err)
	}
	return "decryption failed"
}

// Unwrap returns the underlying error.
func (e *DecryptionError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *DecryptionError) Is(target error) bool {
	return target == ErrDecryptionFailed
}

// EnclaveChatError implements the EnclaveChatError interface.
func (e *DecryptionError) EnclaveChatError() {}
