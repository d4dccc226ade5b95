package enclavechat

import (
	"fmt"

	"github.com/enclavechat/e2ee-go/internal/crypto"
)

// MinPasscodeLength is the minimum accepted passcode length in characters.
const MinPasscodeLength = 6

// EncryptedKeyMaterial is a private key wrapped under a symmetric key
// derived (Argon2id) from a secret -- passcode or recovery code -- plus this
// record's own salt. The ciphertext has the same length as the private key;
// IV and tag are fresh per wrap.
type EncryptedKeyMaterial struct {
	PublicKey           []byte
	EncryptedPrivateKey []byte
	IV                  []byte
	Tag                 []byte
	Salt                []byte
	// Params are the Argon2id parameters used for this wrap.
	Params Argon2Params
}

// KeySetupResult is the outcome of first-time key setup: the same private
// key wrapped twice, once under the passcode and once under the recovery
// code. Both records share the public key but have independent salts and IVs.
type KeySetupResult struct {
	Personal     *EncryptedKeyMaterial
	Recovery     *EncryptedKeyMaterial
	RecoveryCode string
}

func validatePasscode(passcode string) error {
	if len(passcode) < MinPasscodeLength {
		return &ValidationError{Field: "passcode", Err: ErrPasscodeTooShort}
	}
	return nil
}

// wrapPrivateKey wraps a private key under an Argon2id-derived key with a
// fresh salt and IV.
func wrapPrivateKey(privateKey, publicKey []byte, secret string, params Argon2Params) (*EncryptedKeyMaterial, error) {
	salt, err := crypto.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	key, err := crypto.DeriveKeyFromPasscode(secret, salt, params.internal())
	if err != nil {
		return nil, &ValidationError{Field: "key derivation", Err: err}
	}
	defer crypto.Zero(key)

	iv, ciphertext, tag, err := crypto.EncryptAESGCM(key, privateKey, nil)
	if err != nil {
		return nil, fmt.Errorf("wrap private key: %w", err)
	}

	return &EncryptedKeyMaterial{
		PublicKey:           publicKey,
		EncryptedPrivateKey: ciphertext,
		IV:                  iv,
		Tag:                 tag,
		Salt:                salt,
		Params:              params,
	}, nil
}

// GenerateAndEncryptKeys performs first-time key setup: it generates an
// X25519 keypair and a 20-digit recovery code, then wraps the private key
// under both the passcode and the recovery code. Each wrap uses its own
// fresh salt and IV; both share the public key.
//
// The plaintext private key is scrubbed before returning. Display the
// recovery code to the user once; it is not recoverable later.
func GenerateAndEncryptKeys(passcode string, opts ...Option) (*KeySetupResult, error) {
	if err := validatePasscode(passcode); err != nil {
		return nil, err
	}
	cfg := applyOptions(opts)

	keypair, err := crypto.GenerateKeypair()
	if err != nil {
		return nil, fmt.Errorf("generate keypair: %w", err)
	}
	defer crypto.Zero(keypair.PrivateKey)

	recoveryCode, err := crypto.GenerateRecoveryCode()
	if err != nil {
		return nil, fmt.Errorf("generate recovery code: %w", err)
	}

	personal, err := wrapPrivateKey(keypair.PrivateKey, keypair.PublicKey, passcode, cfg.params)
	if err != nil {
		return nil, err
	}

	recovery, err := wrapPrivateKey(keypair.PrivateKey, keypair.PublicKey, recoveryCode, cfg.params)
	if err != nil {
		return nil, err
	}

	return &KeySetupResult{
		Personal:     personal,
		Recovery:     recovery,
		RecoveryCode: recoveryCode,
	}, nil
}

// EncryptPrivateKeyWithPasscode re-wraps a known private key under a new
// passcode with a fresh salt and IV. The corresponding public key is
// recomputed and included. Used by passcode rotation.
func EncryptPrivateKeyWithPasscode(privateKey []byte, passcode string, opts ...Option) (*EncryptedKeyMaterial, error) {
	if len(privateKey) != crypto.KeySize {
		return nil, &ValidationError{Field: "private key", Err: crypto.ErrInvalidPrivateKeySize}
	}
	if err := validatePasscode(passcode); err != nil {
		return nil, err
	}
	cfg := applyOptions(opts)

	keypair, err := crypto.KeypairFromPrivateKey(privateKey)
	if err != nil {
		return nil, &ValidationError{Field: "private key", Err: err}
	}
	defer crypto.Zero(keypair.PrivateKey)

	return wrapPrivateKey(keypair.PrivateKey, keypair.PublicKey, passcode, cfg.params)
}

// DecryptPrivateKey unwraps key material with a passcode (or recovery code)
// and returns the private key as lowercase hex. Every AEAD failure is
// reported as the single uniform ErrIncorrectPasscode so wrong-secret and
// corrupted-data cases are indistinguishable.
func DecryptPrivateKey(passcode string, material *EncryptedKeyMaterial) (string, error) {
	if material == nil {
		return "", &ValidationError{Field: "key material", Err: ErrInvalidInput}
	}
	if len(material.Salt) != crypto.SaltSize {
		return "", &ValidationError{Field: "salt", Err: crypto.ErrInvalidSaltSize}
	}
	if len(material.IV) != crypto.IVSize {
		return "", &ValidationError{Field: "iv", Err: crypto.ErrInvalidIVSize}
	}
	if len(material.Tag) != crypto.TagSize {
		return "", &ValidationError{Field: "tag", Err: crypto.ErrInvalidTagSize}
	}

	params := material.Params
	if params.isZero() {
		params = defaultArgon2Params()
	}

	key, err := crypto.DeriveKeyFromPasscode(passcode, material.Salt, params.internal())
	if err != nil {
		return "", &ValidationError{Field: "passcode", Err: err}
	}
	defer crypto.Zero(key)

	privateKey, err := crypto.DecryptAESGCM(key, material.IV, material.EncryptedPrivateKey, material.Tag, nil)
	if err != nil {
		return "", &AuthenticationError{}
	}
	defer crypto.Zero(privateKey)

	return crypto.ToHex(privateKey), nil
}

// DecryptPrivateKeyFromResponse adapts the persistence wire format into key
// material and unwraps it with the passcode.
func DecryptPrivateKeyFromResponse(passcode string, resp *KeyMaterialResponse) (string, error) {
	if resp == nil {
		return "", &ValidationError{Field: "response", Err: ErrInvalidInput}
	}
	material, err := resp.personalMaterial()
	if err != nil {
		return "", err
	}
	return DecryptPrivateKey(passcode, material)
}

// DecryptPrivateKeyWithRecovery adapts the recovery fields of the
// persistence wire format into key material and unwraps it with the
// recovery code. The code is accepted with or without display dashes.
// Absent recovery fields fail with MissingMaterialError.
func DecryptPrivateKeyWithRecovery(recoveryCode string, resp *KeyMaterialResponse) (string, error) {
	if resp == nil {
		return "", &ValidationError{Field: "response", Err: ErrInvalidInput}
	}
	material, err := resp.recoveryMaterial()
	if err != nil {
		return "", err
	}
	return DecryptPrivateKey(ParseRecoveryCode(recoveryCode), material)
}

// ChangePasscode rotates the passcode wrap: it unwraps the private key with
// the old passcode, then re-wraps it under the new one with a fresh salt
// and IV. The recovery wrap is untouched and the public key never changes.
// An unlock failure propagates as ErrIncorrectPasscode.
func ChangePasscode(oldPasscode, newPasscode string, material *EncryptedKeyMaterial, opts ...Option) (*EncryptedKeyMaterial, error) {
	privateKeyHex, err := DecryptPrivateKey(oldPasscode, material)
	if err != nil {
		return nil, err
	}
	if err := validatePasscode(newPasscode); err != nil {
		return nil, err
	}

	privateKey, err := crypto.KeyFromHex(privateKeyHex)
	if err != nil {
		return nil, &ValidationError{Field: "private key", Err: err}
	}
	defer crypto.Zero(privateKey)

	return EncryptPrivateKeyWithPasscode(privateKey, newPasscode, opts...)
}
