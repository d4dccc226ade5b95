package crypto

import "io"

// GenerateSalt returns a fresh 32-byte CSPRNG salt.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(reader(), salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// GenerateIV returns a fresh 16-byte CSPRNG AES-GCM IV.
func GenerateIV() ([]byte, error) {
	iv := make([]byte, IVSize)
	if _, err := io.ReadFull(reader(), iv); err != nil {
		return nil, err
	}
	return iv, nil
}

// GenerateRecoveryCode returns a string of 20 uniformly random decimal
// digits. Digits are drawn by rejection sampling so every digit is equally
// likely; taking bytes modulo 10 directly would bias toward 0-5.
func GenerateRecoveryCode() (string, error) {
	code := make([]byte, 0, RecoveryCodeLength)
	buf := make([]byte, RecoveryCodeLength)

	for len(code) < RecoveryCodeLength {
		if _, err := io.ReadFull(reader(), buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			// 250 is the largest multiple of 10 that fits in a byte.
			if b >= 250 {
				continue
			}
			code = append(code, '0'+b%10)
			if len(code) == RecoveryCodeLength {
				break
			}
		}
	}

	return string(code), nil
}
