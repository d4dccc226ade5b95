package crypto

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncryptToPublicKey_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		plaintext []byte
		context   string
	}{
		{"empty", []byte{}, ContextClientToEnclave},
		{"simple", []byte("Hello, World!"), "test-context"},
		{"transport", []byte("what is the capital of France?"), ContextClientToEnclave},
		{"storage", []byte("stored turn"), ContextUserStorage},
		{"distribution", make([]byte, KeySize), ContextOrgDistribution},
		{"multi-megabyte", make([]byte, 3<<20), ContextAssistantStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipient, err := GenerateKeypair()
			if err != nil {
				t.Fatal(err)
			}

			payload, err := EncryptToPublicKey(recipient.PublicKey, tt.plaintext, tt.context)
			if err != nil {
				t.Fatalf("EncryptToPublicKey() error = %v", err)
			}

			if len(payload.EphemeralPublicKey) != KeySize {
				t.Errorf("ephemeral public key length = %d, want %d", len(payload.EphemeralPublicKey), KeySize)
			}
			if len(payload.IV) != IVSize {
				t.Errorf("IV length = %d, want %d", len(payload.IV), IVSize)
			}
			if len(payload.AuthTag) != TagSize {
				t.Errorf("tag length = %d, want %d", len(payload.AuthTag), TagSize)
			}
			if len(payload.HKDFSalt) != SaltSize {
				t.Errorf("salt length = %d, want %d", len(payload.HKDFSalt), SaltSize)
			}
			if len(payload.Ciphertext) != len(tt.plaintext) {
				t.Errorf("ciphertext length = %d, want %d", len(payload.Ciphertext), len(tt.plaintext))
			}

			plaintext, err := DecryptWithPrivateKey(recipient.PrivateKey, payload, tt.context)
			if err != nil {
				t.Fatalf("DecryptWithPrivateKey() error = %v", err)
			}
			if !bytes.Equal(plaintext, tt.plaintext) {
				t.Error("round trip altered the plaintext")
			}
		})
	}
}

func TestEncryptToPublicKey_NonDeterministic(t *testing.T) {
	recipient, err := GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}
	plaintext := []byte("identical plaintext")

	a, err := EncryptToPublicKey(recipient.PublicKey, plaintext, "test-context")
	if err != nil {
		t.Fatal(err)
	}
	b, err := EncryptToPublicKey(recipient.PublicKey, plaintext, "test-context")
	if err != nil {
		t.Fatal(err)
	}

	if bytes.Equal(a.EphemeralPublicKey, b.EphemeralPublicKey) {
		t.Error("two envelopes share an ephemeral public key")
	}
	if bytes.Equal(a.IV, b.IV) {
		t.Error("two envelopes share an IV")
	}
	if bytes.Equal(a.Ciphertext, b.Ciphertext) {
		t.Error("two envelopes share ciphertext")
	}
}

func TestDecryptWithPrivateKey_ContextBinding(t *testing.T) {
	recipient, err := GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}

	payload, err := EncryptToPublicKey(recipient.PublicKey, []byte("Hello, World!"), "test-context")
	if err != nil {
		t.Fatal(err)
	}

	contexts := []string{
		"wrong-context",
		ContextClientToEnclave,
		ContextEnclaveToClient,
		ContextUserStorage,
	}
	for _, ctx := range contexts {
		if _, err := DecryptWithPrivateKey(recipient.PrivateKey, payload, ctx); !errors.Is(err, ErrDecryptionFailed) {
			t.Errorf("context %q: expected ErrDecryptionFailed, got %v", ctx, err)
		}
	}

	// The right context still works after the failed attempts.
	if _, err := DecryptWithPrivateKey(recipient.PrivateKey, payload, "test-context"); err != nil {
		t.Fatalf("correct context failed: %v", err)
	}
}

func TestDecryptWithPrivateKey_WrongKey(t *testing.T) {
	recipient, err := GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}
	other, err := GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}

	payload, err := EncryptToPublicKey(recipient.PublicKey, []byte("secret"), "test-context")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := DecryptWithPrivateKey(other.PrivateKey, payload, "test-context"); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("expected ErrDecryptionFailed, got %v", err)
	}
}

func TestDecryptWithPrivateKey_Tampering(t *testing.T) {
	recipient, err := GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}

	fresh := func(t *testing.T) *EncryptedPayload {
		t.Helper()
		p, err := EncryptToPublicKey(recipient.PublicKey, []byte("tamper target"), "test-context")
		if err != nil {
			t.Fatal(err)
		}
		return p
	}

	tests := []struct {
		name   string
		mutate func(*EncryptedPayload)
	}{
		{"ciphertext bit", func(p *EncryptedPayload) { p.Ciphertext[0] ^= 0x01 }},
		{"tag bit", func(p *EncryptedPayload) { p.AuthTag[0] ^= 0x01 }},
		{"iv bit", func(p *EncryptedPayload) { p.IV[0] ^= 0x01 }},
		{"salt bit", func(p *EncryptedPayload) { p.HKDFSalt[0] ^= 0x01 }},
		{"swapped ephemeral key", func(p *EncryptedPayload) {
			kp, err := GenerateKeypair()
			if err != nil {
				t.Fatal(err)
			}
			p.EphemeralPublicKey = kp.PublicKey
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := fresh(t)
			tt.mutate(payload)
			if _, err := DecryptWithPrivateKey(recipient.PrivateKey, payload, "test-context"); !errors.Is(err, ErrDecryptionFailed) {
				t.Errorf("expected ErrDecryptionFailed, got %v", err)
			}
		})
	}
}

func TestEncryptToPublicKey_Validation(t *testing.T) {
	kp, err := GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}

	if _, err := EncryptToPublicKey(make([]byte, 16), []byte("x"), "ctx"); !errors.Is(err, ErrInvalidPublicKeySize) {
		t.Errorf("expected ErrInvalidPublicKeySize, got %v", err)
	}
	if _, err := EncryptToPublicKey(kp.PublicKey, []byte("x"), ""); !errors.Is(err, ErrEmptyContext) {
		t.Errorf("expected ErrEmptyContext, got %v", err)
	}
	if _, err := DecryptWithPrivateKey(make([]byte, 16), &EncryptedPayload{}, "ctx"); !errors.Is(err, ErrInvalidPrivateKeySize) {
		t.Errorf("expected ErrInvalidPrivateKeySize, got %v", err)
	}
	if _, err := DecryptWithPrivateKey(kp.PrivateKey, nil, "ctx"); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("expected ErrDecryptionFailed, got %v", err)
	}
}

func TestEnvelopeKey_ConsumeOnce(t *testing.T) {
	key := make([]byte, AESKeySize)
	ek := &envelopeKey{key: append([]byte(nil), key...)}

	if _, _, _, err := ek.seal([]byte("first"), nil); err != nil {
		t.Fatalf("first seal error = %v", err)
	}
	if _, _, _, err := ek.seal([]byte("second"), nil); !errors.Is(err, ErrKeyConsumed) {
		t.Errorf("expected ErrKeyConsumed, got %v", err)
	}
}
