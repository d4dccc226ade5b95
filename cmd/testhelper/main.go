// Command testhelper exposes the enclavechat E2EE operations as JSON-over-stdio
// commands so other SDK implementations can be checked for cross-compatibility:
// envelopes produced by one SDK must decrypt in another.
//
// Usage:
//
//	testhelper <command>
//
// Each command reads a JSON request from stdin and writes a JSON response to
// stdout. No command performs network or filesystem I/O.
package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	enclavechat "github.com/enclavechat/e2ee-go"
)

// Config carries the helper's I/O streams so tests can substitute buffers.
type Config struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultConfig returns a Config wired to the process streams.
func DefaultConfig() Config {
	return Config{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

func run(args []string, cfg Config) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: testhelper <command>")
	}

	switch args[1] {
	case "setup-keys":
		return setupKeys(cfg)
	case "unlock":
		return unlock(cfg)
	case "unlock-recovery":
		return unlockRecovery(cfg)
	case "change-passcode":
		return changePasscode(cfg)
	case "encrypt-message":
		return encryptMessage(cfg)
	case "decrypt-message":
		return decryptMessage(cfg)
	case "encrypt-stored":
		return encryptStored(cfg)
	case "decrypt-stored":
		return decryptStored(cfg)
	case "reencrypt-history":
		return reencryptHistory(cfg)
	case "org-wrap":
		return orgWrap(cfg)
	case "org-unwrap":
		return orgUnwrap(cfg)
	default:
		return fmt.Errorf("unknown command: %s", args[1])
	}
}

func decode(cfg Config, v interface{}) error {
	if err := json.NewDecoder(cfg.Stdin).Decode(v); err != nil {
		return fmt.Errorf("parse request: %w", err)
	}
	return nil
}

func respond(cfg Config, v interface{}) error {
	return json.NewEncoder(cfg.Stdout).Encode(v)
}

func setupKeys(cfg Config) error {
	var req struct {
		Passcode string                    `json:"passcode"`
		Params   *enclavechat.Argon2Params `json:"argon2_params,omitempty"`
	}
	if err := decode(cfg, &req); err != nil {
		return err
	}

	var opts []enclavechat.Option
	if req.Params != nil {
		opts = append(opts, enclavechat.WithArgon2Params(*req.Params))
	}

	setup, err := enclavechat.GenerateAndEncryptKeys(req.Passcode, opts...)
	if err != nil {
		return err
	}

	return respond(cfg, struct {
		Keys         *enclavechat.StoreKeysRequest `json:"keys"`
		RecoveryCode string                        `json:"recovery_code"`
	}{
		Keys:         enclavechat.ToStoreKeysRequest(setup),
		RecoveryCode: enclavechat.FormatRecoveryCode(setup.RecoveryCode),
	})
}

type unlockedOutput struct {
	PrivateKey string `json:"private_key"`
	PublicKey  string `json:"public_key"`
}

func unlock(cfg Config) error {
	var req struct {
		Passcode string                          `json:"passcode"`
		Keys     *enclavechat.KeyMaterialResponse `json:"keys"`
	}
	if err := decode(cfg, &req); err != nil {
		return err
	}

	key, err := enclavechat.Unlock(req.Passcode, req.Keys)
	if err != nil {
		return err
	}
	defer key.Destroy()

	privateKeyHex, err := key.PrivateKeyHex()
	if err != nil {
		return err
	}
	return respond(cfg, unlockedOutput{PrivateKey: privateKeyHex, PublicKey: key.PublicKeyHex()})
}

func unlockRecovery(cfg Config) error {
	var req struct {
		RecoveryCode string                          `json:"recovery_code"`
		Keys         *enclavechat.KeyMaterialResponse `json:"keys"`
	}
	if err := decode(cfg, &req); err != nil {
		return err
	}

	key, err := enclavechat.UnlockWithRecovery(req.RecoveryCode, req.Keys)
	if err != nil {
		return err
	}
	defer key.Destroy()

	privateKeyHex, err := key.PrivateKeyHex()
	if err != nil {
		return err
	}
	return respond(cfg, unlockedOutput{PrivateKey: privateKeyHex, PublicKey: key.PublicKeyHex()})
}

// materialOutput is the wire form of a single rotated wrap.
type materialOutput struct {
	PublicKey           string `json:"public_key"`
	EncryptedPrivateKey string `json:"encrypted_private_key"`
	IV                  string `json:"iv"`
	Tag                 string `json:"tag"`
	Salt                string `json:"salt"`

	Argon2TimeCost     uint32 `json:"argon2_time_cost"`
	Argon2MemoryCostKB uint32 `json:"argon2_memory_cost_kb"`
	Argon2Parallelism  uint8  `json:"argon2_parallelism"`
}

func changePasscode(cfg Config) error {
	var req struct {
		OldPasscode string                          `json:"old_passcode"`
		NewPasscode string                          `json:"new_passcode"`
		Keys        *enclavechat.KeyMaterialResponse `json:"keys"`
	}
	if err := decode(cfg, &req); err != nil {
		return err
	}

	privateKeyHex, err := enclavechat.DecryptPrivateKeyFromResponse(req.OldPasscode, req.Keys)
	if err != nil {
		return err
	}
	privateKey, err := hex.DecodeString(privateKeyHex)
	if err != nil {
		return err
	}

	material, err := enclavechat.EncryptPrivateKeyWithPasscode(privateKey, req.NewPasscode)
	if err != nil {
		return err
	}

	return respond(cfg, materialOutput{
		PublicKey:           hex.EncodeToString(material.PublicKey),
		EncryptedPrivateKey: hex.EncodeToString(material.EncryptedPrivateKey),
		IV:                  hex.EncodeToString(material.IV),
		Tag:                 hex.EncodeToString(material.Tag),
		Salt:                hex.EncodeToString(material.Salt),
		Argon2TimeCost:      material.Params.TimeCost,
		Argon2MemoryCostKB:  material.Params.MemoryCostKB,
		Argon2Parallelism:   material.Params.Parallelism,
	})
}

func encryptMessage(cfg Config) error {
	var req struct {
		EnclavePublicKey string `json:"enclave_public_key"`
		Plaintext        string `json:"plaintext"`
	}
	if err := decode(cfg, &req); err != nil {
		return err
	}

	envelope, err := enclavechat.EncryptMessageToEnclave(req.EnclavePublicKey, req.Plaintext)
	if err != nil {
		return err
	}
	return respond(cfg, envelope)
}

func decryptMessage(cfg Config) error {
	var req struct {
		PrivateKey string                            `json:"private_key"`
		Envelope   *enclavechat.EncryptedPayloadWire `json:"envelope"`
	}
	if err := decode(cfg, &req); err != nil {
		return err
	}

	plaintext, err := enclavechat.DecryptMessageFromEnclave(req.PrivateKey, req.Envelope)
	if err != nil {
		return err
	}
	return respond(cfg, struct {
		Plaintext string `json:"plaintext"`
	}{plaintext})
}

func encryptStored(cfg Config) error {
	var req struct {
		PublicKey string           `json:"public_key"`
		Plaintext string           `json:"plaintext"`
		Role      enclavechat.Role `json:"role"`
	}
	if err := decode(cfg, &req); err != nil {
		return err
	}

	stored, err := enclavechat.EncryptStoredMessage(req.PublicKey, req.Plaintext, req.Role)
	if err != nil {
		return err
	}
	return respond(cfg, stored)
}

func decryptStored(cfg Config) error {
	var req struct {
		PrivateKey string                      `json:"private_key"`
		Messages   []enclavechat.StoredMessage `json:"messages"`
	}
	if err := decode(cfg, &req); err != nil {
		return err
	}

	plaintexts, err := enclavechat.DecryptStoredMessages(req.PrivateKey, req.Messages)
	if err != nil {
		return err
	}
	return respond(cfg, struct {
		Plaintexts []string `json:"plaintexts"`
	}{plaintexts})
}

func reencryptHistory(cfg Config) error {
	var req struct {
		PrivateKey       string                      `json:"private_key"`
		EnclavePublicKey string                      `json:"enclave_public_key"`
		Messages         []enclavechat.StoredMessage `json:"messages"`
	}
	if err := decode(cfg, &req); err != nil {
		return err
	}

	envelopes, err := enclavechat.ReEncryptHistoryForTransport(req.PrivateKey, req.EnclavePublicKey, req.Messages)
	if err != nil {
		return err
	}
	return respond(cfg, struct {
		Envelopes []*enclavechat.EncryptedPayloadWire `json:"envelopes"`
	}{envelopes})
}

func orgWrap(cfg Config) error {
	var req struct {
		OrgPrivateKey    string   `json:"org_private_key"`
		MemberPublicKeys []string `json:"member_public_keys"`
	}
	if err := decode(cfg, &req); err != nil {
		return err
	}

	envelopes := make([]*enclavechat.EncryptedPayloadWire, 0, len(req.MemberPublicKeys))
	for _, memberKey := range req.MemberPublicKeys {
		envelope, err := enclavechat.EncryptOrgKeyForMember(req.OrgPrivateKey, memberKey)
		if err != nil {
			return err
		}
		envelopes = append(envelopes, envelope)
	}
	return respond(cfg, struct {
		Envelopes []*enclavechat.EncryptedPayloadWire `json:"envelopes"`
	}{envelopes})
}

func orgUnwrap(cfg Config) error {
	var req struct {
		MemberPrivateKey string                            `json:"member_private_key"`
		Envelope         *enclavechat.EncryptedPayloadWire `json:"envelope"`
	}
	if err := decode(cfg, &req); err != nil {
		return err
	}

	orgKey, err := enclavechat.DecryptOrgKey(req.MemberPrivateKey, req.Envelope)
	if err != nil {
		return err
	}
	return respond(cfg, struct {
		OrgPrivateKey string `json:"org_private_key"`
	}{orgKey})
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
