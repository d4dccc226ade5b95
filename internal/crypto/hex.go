package crypto

import (
	"encoding/hex"
	"fmt"
)

// ToHex encodes bytes as canonical lowercase hex.
func ToHex(data []byte) string {
	return hex.EncodeToString(data)
}

// FromHex decodes a hex string. Odd-length input is rejected rather than
// truncated or padded; uppercase digits are accepted.
func FromHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, ErrOddLengthHex
	}
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return data, nil
}

// KeyFromHex decodes a hex-encoded 32-byte key.
func KeyFromHex(s string) ([]byte, error) {
	key, err := FromHex(s)
	if err != nil {
		return nil, err
	}
	if len(key) != KeySize {
		return nil, ErrInvalidKeySize
	}
	return key, nil
}
