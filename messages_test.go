package enclavechat

import (
	"errors"
	"strings"
	"testing"
)

func generateKeypair(t *testing.T) *Keypair {
	t.Helper()
	kp, err := GenerateKeypair()
	if err != nil {
		t.Fatal(err)
	}
	return kp
}

func TestEncryptMessageToEnclave_RoundTrip(t *testing.T) {
	enclave := generateKeypair(t)

	envelope, err := EncryptMessageToEnclave(enclave.PublicKeyHex, "Hello, World!")
	if err != nil {
		t.Fatalf("EncryptMessageToEnclave() error = %v", err)
	}

	// Envelope wire fields are lowercase hex with the fixed sizes.
	if len(envelope.EphemeralPublicKey) != 64 {
		t.Errorf("ephemeral_public_key hex length = %d, want 64", len(envelope.EphemeralPublicKey))
	}
	if len(envelope.IV) != 32 {
		t.Errorf("iv hex length = %d, want 32", len(envelope.IV))
	}
	if len(envelope.AuthTag) != 32 {
		t.Errorf("auth_tag hex length = %d, want 32", len(envelope.AuthTag))
	}
	if len(envelope.HKDFSalt) != 64 {
		t.Errorf("hkdf_salt hex length = %d, want 64", len(envelope.HKDFSalt))
	}
	for _, field := range []string{envelope.EphemeralPublicKey, envelope.IV, envelope.Ciphertext, envelope.AuthTag, envelope.HKDFSalt} {
		if field != strings.ToLower(field) {
			t.Error("wire field is not lowercase hex")
		}
	}

	// The enclave decrypts under the client-to-enclave transport context.
	plaintext, err := decryptWith(enclave.PrivateKeyHex, envelope, ContextClientToEnclave)
	if err != nil {
		t.Fatalf("enclave-side decrypt error = %v", err)
	}
	if string(plaintext) != "Hello, World!" {
		t.Errorf("plaintext = %q", plaintext)
	}

	// Any other context fails.
	if _, err := decryptWith(enclave.PrivateKeyHex, envelope, ContextEnclaveToClient); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("expected ErrDecryptionFailed, got %v", err)
	}
}

func TestEncryptMessageToEnclave_FreshEnvelopePerCall(t *testing.T) {
	enclave := generateKeypair(t)

	a, err := EncryptMessageToEnclave(enclave.PublicKeyHex, "same message")
	if err != nil {
		t.Fatal(err)
	}
	b, err := EncryptMessageToEnclave(enclave.PublicKeyHex, "same message")
	if err != nil {
		t.Fatal(err)
	}

	if a.EphemeralPublicKey == b.EphemeralPublicKey {
		t.Error("two envelopes share an ephemeral key")
	}
	if a.Ciphertext == b.Ciphertext {
		t.Error("two envelopes share ciphertext")
	}
}

func TestDecryptMessageFromEnclave(t *testing.T) {
	client := generateKeypair(t)

	// The enclave encrypts its reply to the client public key under the
	// enclave-to-client transport context.
	reply, err := encryptTo(client.PublicKeyHex, []byte("the capital of France is Paris"), ContextEnclaveToClient)
	if err != nil {
		t.Fatal(err)
	}

	plaintext, err := DecryptMessageFromEnclave(client.PrivateKeyHex, reply)
	if err != nil {
		t.Fatalf("DecryptMessageFromEnclave() error = %v", err)
	}
	if plaintext != "the capital of France is Paris" {
		t.Errorf("plaintext = %q", plaintext)
	}

	// An envelope produced under the outbound transport context must not
	// be accepted as an enclave reply.
	outbound, err := encryptTo(client.PublicKeyHex, []byte("looped back"), ContextClientToEnclave)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := DecryptMessageFromEnclave(client.PrivateKeyHex, outbound); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("expected ErrDecryptionFailed, got %v", err)
	}
}

func TestStoredMessage_RoundTrip(t *testing.T) {
	user := generateKeypair(t)

	tests := []struct {
		role Role
		text string
	}{
		{RoleUser, "what is 2+2?"},
		{RoleAssistant, "2+2 equals 4."},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			stored, err := EncryptStoredMessage(user.PublicKeyHex, tt.text, tt.role)
			if err != nil {
				t.Fatalf("EncryptStoredMessage() error = %v", err)
			}
			if stored.Role != tt.role {
				t.Errorf("role = %q, want %q", stored.Role, tt.role)
			}

			plaintext, err := DecryptStoredMessage(user.PrivateKeyHex, stored.EncryptedContent, tt.role)
			if err != nil {
				t.Fatalf("DecryptStoredMessage() error = %v", err)
			}
			if plaintext != tt.text {
				t.Errorf("plaintext = %q, want %q", plaintext, tt.text)
			}
		})
	}
}

func TestDecryptStoredMessage_RoleMismatch(t *testing.T) {
	user := generateKeypair(t)

	stored, err := EncryptStoredMessage(user.PublicKeyHex, "user turn", RoleUser)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := DecryptStoredMessage(user.PrivateKeyHex, stored.EncryptedContent, RoleAssistant); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("expected ErrDecryptionFailed, got %v", err)
	}
	if _, err := DecryptStoredMessage(user.PrivateKeyHex, stored.EncryptedContent, Role("system")); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for unknown role, got %v", err)
	}
}

func storedHistory(t *testing.T, user *Keypair, turns []string) []StoredMessage {
	t.Helper()
	messages := make([]StoredMessage, 0, len(turns))
	for i, text := range turns {
		role := RoleUser
		if i%2 == 1 {
			role = RoleAssistant
		}
		stored, err := EncryptStoredMessage(user.PublicKeyHex, text, role)
		if err != nil {
			t.Fatal(err)
		}
		messages = append(messages, *stored)
	}
	return messages
}

func TestDecryptStoredMessages(t *testing.T) {
	user := generateKeypair(t)
	turns := []string{"first question", "first answer", "second question", "second answer"}
	history := storedHistory(t, user, turns)

	plaintexts, err := DecryptStoredMessages(user.PrivateKeyHex, history)
	if err != nil {
		t.Fatalf("DecryptStoredMessages() error = %v", err)
	}

	if len(plaintexts) != len(turns) {
		t.Fatalf("got %d plaintexts, want %d", len(plaintexts), len(turns))
	}
	for i, text := range turns {
		if plaintexts[i] != text {
			t.Errorf("plaintext[%d] = %q, want %q", i, plaintexts[i], text)
		}
	}
}

func TestDecryptStoredMessages_Empty(t *testing.T) {
	user := generateKeypair(t)

	plaintexts, err := DecryptStoredMessages(user.PrivateKeyHex, nil)
	if err != nil {
		t.Fatalf("DecryptStoredMessages(nil) error = %v", err)
	}
	if len(plaintexts) != 0 {
		t.Errorf("got %d plaintexts, want 0", len(plaintexts))
	}
}

func TestDecryptStoredMessages_WrongKey(t *testing.T) {
	user := generateKeypair(t)
	other := generateKeypair(t)
	history := storedHistory(t, user, []string{"private turn"})

	if _, err := DecryptStoredMessages(other.PrivateKeyHex, history); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("expected ErrDecryptionFailed, got %v", err)
	}
}

func TestReEncryptHistoryForTransport(t *testing.T) {
	user := generateKeypair(t)
	enclave := generateKeypair(t)
	turns := []string{"question one", "answer one", "question two"}
	history := storedHistory(t, user, turns)

	envelopes, err := ReEncryptHistoryForTransport(user.PrivateKeyHex, enclave.PublicKeyHex, history)
	if err != nil {
		t.Fatalf("ReEncryptHistoryForTransport() error = %v", err)
	}
	if len(envelopes) != len(turns) {
		t.Fatalf("got %d envelopes, want %d", len(envelopes), len(turns))
	}

	for i, envelope := range envelopes {
		// Re-encrypted envelopes are fresh, not the stored ones.
		if envelope.Ciphertext == history[i].EncryptedContent.Ciphertext {
			t.Errorf("envelope %d reuses stored ciphertext", i)
		}

		// The enclave reads each turn under the transport context, in order.
		plaintext, err := decryptWith(enclave.PrivateKeyHex, envelope, ContextClientToEnclave)
		if err != nil {
			t.Fatalf("enclave decrypt of envelope %d error = %v", i, err)
		}
		if string(plaintext) != turns[i] {
			t.Errorf("envelope %d = %q, want %q", i, plaintext, turns[i])
		}

		// The storage contexts no longer apply.
		if _, err := decryptWith(user.PrivateKeyHex, envelope, ContextUserStorage); !errors.Is(err, ErrDecryptionFailed) {
			t.Errorf("envelope %d still opens under a storage context", i)
		}
	}
}

func TestReEncryptHistoryForTransport_Empty(t *testing.T) {
	user := generateKeypair(t)
	enclave := generateKeypair(t)

	envelopes, err := ReEncryptHistoryForTransport(user.PrivateKeyHex, enclave.PublicKeyHex, nil)
	if err != nil {
		t.Fatalf("ReEncryptHistoryForTransport(nil) error = %v", err)
	}
	if len(envelopes) != 0 {
		t.Errorf("got %d envelopes, want 0", len(envelopes))
	}
}

func TestEncryptMessageToEnclave_InvalidKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"odd length", "abc"},
		{"not hex", "zz"},
		{"wrong size", "abcd"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := EncryptMessageToEnclave(tt.key, "hi"); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestStorageContext(t *testing.T) {
	if ctx, err := StorageContext(RoleUser); err != nil || ctx != ContextUserStorage {
		t.Errorf("StorageContext(user) = %q, %v", ctx, err)
	}
	if ctx, err := StorageContext(RoleAssistant); err != nil || ctx != ContextAssistantStorage {
		t.Errorf("StorageContext(assistant) = %q, %v", ctx, err)
	}
	if _, err := StorageContext(Role("moderator")); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
