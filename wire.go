package enclavechat

import "github.com/enclavechat/e2ee-go/internal/crypto"

// StoreKeysRequest is the persistence wire format for freshly set-up key
// material. All byte fields are lowercase hex. The backend stores it
// verbatim and returns it as a KeyMaterialResponse.
type StoreKeysRequest struct {
	PublicKey           string `json:"public_key"`
	EncryptedPrivateKey string `json:"encrypted_private_key"`
	IV                  string `json:"iv"`
	Tag                 string `json:"tag"`
	Salt                string `json:"salt"`

	RecoveryEncryptedPrivateKey string `json:"recovery_encrypted_private_key"`
	RecoveryIV                  string `json:"recovery_iv"`
	RecoveryTag                 string `json:"recovery_tag"`
	RecoverySalt                string `json:"recovery_salt"`

	// Argon2id parameters are stored alongside the ciphertext so unlock
	// reproduces the exact derivation.
	Argon2TimeCost     uint32 `json:"argon2_time_cost"`
	Argon2MemoryCostKB uint32 `json:"argon2_memory_cost_kb"`
	Argon2Parallelism  uint8  `json:"argon2_parallelism"`
}

// KeyMaterialResponse is the persistence wire format returned by the
// backend: the same fields the client stored, unmodified. Recovery fields
// are empty when no recovery wrap exists. Zero Argon2 parameters fall back
// to the defaults for material stored before parameters were persisted.
type KeyMaterialResponse struct {
	PublicKey           string `json:"public_key"`
	EncryptedPrivateKey string `json:"encrypted_private_key"`
	IV                  string `json:"iv"`
	Tag                 string `json:"tag"`
	Salt                string `json:"salt"`

	RecoveryEncryptedPrivateKey string `json:"recovery_encrypted_private_key"`
	RecoveryIV                  string `json:"recovery_iv"`
	RecoveryTag                 string `json:"recovery_tag"`
	RecoverySalt                string `json:"recovery_salt"`

	Argon2TimeCost     uint32 `json:"argon2_time_cost"`
	Argon2MemoryCostKB uint32 `json:"argon2_memory_cost_kb"`
	Argon2Parallelism  uint8  `json:"argon2_parallelism"`
}

// ToStoreKeysRequest flattens a KeySetupResult into the persistence wire
// format. Both wraps were produced with the same Argon2 parameters.
func ToStoreKeysRequest(setup *KeySetupResult) *StoreKeysRequest {
	return &StoreKeysRequest{
		PublicKey:           crypto.ToHex(setup.Personal.PublicKey),
		EncryptedPrivateKey: crypto.ToHex(setup.Personal.EncryptedPrivateKey),
		IV:                  crypto.ToHex(setup.Personal.IV),
		Tag:                 crypto.ToHex(setup.Personal.Tag),
		Salt:                crypto.ToHex(setup.Personal.Salt),

		RecoveryEncryptedPrivateKey: crypto.ToHex(setup.Recovery.EncryptedPrivateKey),
		RecoveryIV:                  crypto.ToHex(setup.Recovery.IV),
		RecoveryTag:                 crypto.ToHex(setup.Recovery.Tag),
		RecoverySalt:                crypto.ToHex(setup.Recovery.Salt),

		Argon2TimeCost:     setup.Personal.Params.TimeCost,
		Argon2MemoryCostKB: setup.Personal.Params.MemoryCostKB,
		Argon2Parallelism:  setup.Personal.Params.Parallelism,
	}
}

func (r *KeyMaterialResponse) params() Argon2Params {
	p := Argon2Params{
		TimeCost:     r.Argon2TimeCost,
		MemoryCostKB: r.Argon2MemoryCostKB,
		Parallelism:  r.Argon2Parallelism,
	}
	if p.isZero() {
		return defaultArgon2Params()
	}
	return p
}

func decodeField(name, value string) ([]byte, error) {
	b, err := crypto.FromHex(value)
	if err != nil {
		return nil, &ValidationError{Field: name, Err: err}
	}
	return b, nil
}

// personalMaterial adapts the passcode-wrapped fields into key material.
func (r *KeyMaterialResponse) personalMaterial() (*EncryptedKeyMaterial, error) {
	m := &EncryptedKeyMaterial{Params: r.params()}
	var err error
	if m.PublicKey, err = decodeField("public_key", r.PublicKey); err != nil {
		return nil, err
	}
	if m.EncryptedPrivateKey, err = decodeField("encrypted_private_key", r.EncryptedPrivateKey); err != nil {
		return nil, err
	}
	if m.IV, err = decodeField("iv", r.IV); err != nil {
		return nil, err
	}
	if m.Tag, err = decodeField("tag", r.Tag); err != nil {
		return nil, err
	}
	if m.Salt, err = decodeField("salt", r.Salt); err != nil {
		return nil, err
	}
	return m, nil
}

// recoveryMaterial adapts the recovery-wrapped fields into key material.
// Absent fields mean no recovery wrap was stored.
func (r *KeyMaterialResponse) recoveryMaterial() (*EncryptedKeyMaterial, error) {
	switch {
	case r.RecoveryEncryptedPrivateKey == "":
		return nil, &MissingMaterialError{Field: "recovery_encrypted_private_key"}
	case r.RecoveryIV == "":
		return nil, &MissingMaterialError{Field: "recovery_iv"}
	case r.RecoveryTag == "":
		return nil, &MissingMaterialError{Field: "recovery_tag"}
	case r.RecoverySalt == "":
		return nil, &MissingMaterialError{Field: "recovery_salt"}
	}

	m := &EncryptedKeyMaterial{Params: r.params()}
	var err error
	if m.PublicKey, err = decodeField("public_key", r.PublicKey); err != nil {
		return nil, err
	}
	if m.EncryptedPrivateKey, err = decodeField("recovery_encrypted_private_key", r.RecoveryEncryptedPrivateKey); err != nil {
		return nil, err
	}
	if m.IV, err = decodeField("recovery_iv", r.RecoveryIV); err != nil {
		return nil, err
	}
	if m.Tag, err = decodeField("recovery_tag", r.RecoveryTag); err != nil {
		return nil, err
	}
	if m.Salt, err = decodeField("recovery_salt", r.RecoverySalt); err != nil {
		return nil, err
	}
	return m, nil
}

// EncryptedPayloadWire is the hex wire format of an envelope, as carried by
// the transport and persistence layers.
type EncryptedPayloadWire struct {
	EphemeralPublicKey string `json:"ephemeral_public_key"`
	IV                 string `json:"iv"`
	Ciphertext         string `json:"ciphertext"`
	AuthTag            string `json:"auth_tag"`
	HKDFSalt           string `json:"hkdf_salt"`
}

// EncryptedPayload is the binary form of an envelope: a fresh ephemeral
// public key, the HKDF salt, and the AES-GCM IV/ciphertext/tag.
type EncryptedPayload struct {
	EphemeralPublicKey []byte
	IV                 []byte
	Ciphertext         []byte
	AuthTag            []byte
	HKDFSalt           []byte
}

func (p *EncryptedPayload) internal() *crypto.EncryptedPayload {
	return &crypto.EncryptedPayload{
		EphemeralPublicKey: p.EphemeralPublicKey,
		IV:                 p.IV,
		Ciphertext:         p.Ciphertext,
		AuthTag:            p.AuthTag,
		HKDFSalt:           p.HKDFSalt,
	}
}

func payloadFromInternal(p *crypto.EncryptedPayload) *EncryptedPayload {
	return &EncryptedPayload{
		EphemeralPublicKey: p.EphemeralPublicKey,
		IV:                 p.IV,
		Ciphertext:         p.Ciphertext,
		AuthTag:            p.AuthTag,
		HKDFSalt:           p.HKDFSalt,
	}
}

// SerializePayload encodes a binary envelope into the hex wire format.
func SerializePayload(p *EncryptedPayload) *EncryptedPayloadWire {
	return &EncryptedPayloadWire{
		EphemeralPublicKey: crypto.ToHex(p.EphemeralPublicKey),
		IV:                 crypto.ToHex(p.IV),
		Ciphertext:         crypto.ToHex(p.Ciphertext),
		AuthTag:            crypto.ToHex(p.AuthTag),
		HKDFSalt:           crypto.ToHex(p.HKDFSalt),
	}
}

// DeserializePayload decodes the hex wire format back into a binary
// envelope. SerializePayload and DeserializePayload round-trip
// byte-for-byte.
func DeserializePayload(w *EncryptedPayloadWire) (*EncryptedPayload, error) {
	if w == nil {
		return nil, &ValidationError{Field: "payload", Err: ErrInvalidInput}
	}

	p := &EncryptedPayload{}
	var err error
	if p.EphemeralPublicKey, err = decodeField("ephemeral_public_key", w.EphemeralPublicKey); err != nil {
		return nil, err
	}
	if p.IV, err = decodeField("iv", w.IV); err != nil {
		return nil, err
	}
	if p.Ciphertext, err = decodeField("ciphertext", w.Ciphertext); err != nil {
		return nil, err
	}
	if p.AuthTag, err = decodeField("auth_tag", w.AuthTag); err != nil {
		return nil, err
	}
	if p.HKDFSalt, err = decodeField("hkdf_salt", w.HKDFSalt); err != nil {
		return nil, err
	}
	return p, nil
}
