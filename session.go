package enclavechat

import "github.com/enclavechat/e2ee-go/internal/crypto"

// UnlockedKey holds a user's plaintext private key for the lifetime of a
// session. It is a scoped resource: call Destroy when the session ends (or
// on lock) to scrub the key bytes; every accessor fails afterwards.
//
// The value holds no locks and is not safe for concurrent use; serializing
// unlock and lock transitions is the surrounding application's job.
type UnlockedKey struct {
	privateKey []byte
	publicKey  []byte
	destroyed  bool
}

// Unlock unwraps the stored key material with a passcode and returns the
// private key as a session-scoped resource.
func Unlock(passcode string, resp *KeyMaterialResponse) (*UnlockedKey, error) {
	privateKeyHex, err := DecryptPrivateKeyFromResponse(passcode, resp)
	if err != nil {
		return nil, err
	}
	return unlockedFromHex(privateKeyHex)
}

// UnlockWithRecovery unwraps the stored key material with a recovery code.
// Used when the passcode is lost; the caller will typically follow up with
// EncryptPrivateKeyWithPasscode to set a new passcode wrap.
func UnlockWithRecovery(recoveryCode string, resp *KeyMaterialResponse) (*UnlockedKey, error) {
	privateKeyHex, err := DecryptPrivateKeyWithRecovery(recoveryCode, resp)
	if err != nil {
		return nil, err
	}
	return unlockedFromHex(privateKeyHex)
}

func unlockedFromHex(privateKeyHex string) (*UnlockedKey, error) {
	privateKey, err := crypto.KeyFromHex(privateKeyHex)
	if err != nil {
		return nil, &ValidationError{Field: "private key", Err: err}
	}

	keypair, err := crypto.KeypairFromPrivateKey(privateKey)
	if err != nil {
		crypto.Zero(privateKey)
		return nil, &ValidationError{Field: "private key", Err: err}
	}

	return &UnlockedKey{
		privateKey: keypair.PrivateKey,
		publicKey:  keypair.PublicKey,
	}, nil
}

// PrivateKeyHex returns the private key as lowercase hex for use with the
// message and distribution operations.
func (k *UnlockedKey) PrivateKeyHex() (string, error) {
	if k.destroyed {
		return "", ErrKeyDestroyed
	}
	return crypto.ToHex(k.privateKey), nil
}

// PrivateKeyBytes returns a copy of the raw private key. The caller owns
// the copy and should scrub it when done.
func (k *UnlockedKey) PrivateKeyBytes() ([]byte, error) {
	if k.destroyed {
		return nil, ErrKeyDestroyed
	}
	return append([]byte(nil), k.privateKey...), nil
}

// PublicKeyHex returns the corresponding public key as lowercase hex.
// It remains available after Destroy; the public key is not a secret.
func (k *UnlockedKey) PublicKeyHex() string {
	return crypto.ToHex(k.publicKey)
}

// Destroy scrubs the private key bytes. Safe to call more than once.
func (k *UnlockedKey) Destroy() {
	if k.destroyed {
		return
	}
	crypto.Zero(k.privateKey)
	k.destroyed = true
}
