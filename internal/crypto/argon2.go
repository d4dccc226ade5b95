package crypto

import "golang.org/x/crypto/argon2"

// Argon2Params holds the Argon2id cost parameters. They are caller-supplied
// and stored alongside the wrapped key so unlock reproduces the exact
// derivation.
type Argon2Params struct {
	// TimeCost is the number of passes over memory.
	TimeCost uint32
	// MemoryCostKB is the memory usage in KiB.
	MemoryCostKB uint32
	// Parallelism is the number of lanes.
	Parallelism uint8
}

// DefaultArgon2Params are the parameters used when the caller does not
// override them. 64 MiB / 3 passes matches the enclavechat web client.
var DefaultArgon2Params = Argon2Params{
	TimeCost:     3,
	MemoryCostKB: 64 * 1024,
	Parallelism:  1,
}

// Valid reports whether the parameters are usable.
func (p Argon2Params) Valid() bool {
	return p.TimeCost > 0 && p.MemoryCostKB > 0 && p.Parallelism > 0
}

// DeriveKeyFromPasscode derives a 32-byte wrapping key from a passcode (or
// recovery code) and a 32-byte salt using Argon2id. The derivation is
// deterministic for fixed inputs, which is what lets unlock reproduce the
// wrap key.
func DeriveKeyFromPasscode(passcode string, salt []byte, params Argon2Params) ([]byte, error) {
	if passcode == "" {
		return nil, ErrEmptyPasscode
	}
	if len(salt) != SaltSize {
		return nil, ErrInvalidSaltSize
	}
	if !params.Valid() {
		return nil, ErrInvalidArgon2Params
	}

	key := argon2.IDKey([]byte(passcode), salt, params.TimeCost, params.MemoryCostKB, params.Parallelism, AESKeySize)
	return key, nil
}
