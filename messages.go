package enclavechat

import (
	"github.com/enclavechat/e2ee-go/internal/crypto"
)

// EncryptionContext is a domain-separation label folded into HKDF key
// derivation. An envelope can only be decrypted under the exact context it
// was encrypted with; a mismatch fails authentication just like a wrong key.
type EncryptionContext string

const (
	// ContextClientToEnclave binds envelopes carrying client messages to
	// the inference enclave.
	ContextClientToEnclave EncryptionContext = crypto.ContextClientToEnclave
	// ContextEnclaveToClient binds envelopes carrying enclave responses
	// back to the client.
	ContextEnclaveToClient EncryptionContext = crypto.ContextEnclaveToClient
	// ContextUserStorage binds at-rest envelopes for user messages.
	ContextUserStorage EncryptionContext = crypto.ContextUserStorage
	// ContextAssistantStorage binds at-rest envelopes for assistant messages.
	ContextAssistantStorage EncryptionContext = crypto.ContextAssistantStorage
	// ContextOrgDistribution binds envelopes distributing an organization
	// private key to its members.
	ContextOrgDistribution EncryptionContext = crypto.ContextOrgDistribution
)

// Role identifies who authored a stored message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// StorageContext returns the at-rest encryption context for a message role.
func StorageContext(role Role) (EncryptionContext, error) {
	switch role {
	case RoleUser:
		return ContextUserStorage, nil
	case RoleAssistant:
		return ContextAssistantStorage, nil
	default:
		return "", &ValidationError{Field: "role", Err: ErrInvalidInput}
	}
}

// StoredMessage is one turn of conversation history as persisted by the
// backend: the role plus an envelope encrypted to the owning user's own
// public key under the role's storage context.
type StoredMessage struct {
	Role             Role                  `json:"role"`
	EncryptedContent *EncryptedPayloadWire `json:"encrypted_content"`
}

// encryptTo encrypts plaintext to a hex public key under a context and
// returns the wire envelope.
func encryptTo(publicKeyHex string, plaintext []byte, context EncryptionContext) (*EncryptedPayloadWire, error) {
	publicKey, err := crypto.KeyFromHex(publicKeyHex)
	if err != nil {
		return nil, &ValidationError{Field: "public key", Err: err}
	}

	payload, err := crypto.EncryptToPublicKey(publicKey, plaintext, string(context))
	if err != nil {
		return nil, err
	}
	return SerializePayload(payloadFromInternal(payload)), nil
}

// decryptWith decrypts a wire envelope with a hex private key under a
// context. AEAD failures come back as DecryptionError.
func decryptWith(privateKeyHex string, w *EncryptedPayloadWire, context EncryptionContext) ([]byte, error) {
	privateKey, err := crypto.KeyFromHex(privateKeyHex)
	if err != nil {
		return nil, &ValidationError{Field: "private key", Err: err}
	}
	defer crypto.Zero(privateKey)

	payload, err := DeserializePayload(w)
	if err != nil {
		return nil, err
	}

	plaintext, err := crypto.DecryptWithPrivateKey(privateKey, payload.internal(), string(context))
	if err != nil {
		return nil, &DecryptionError{Err: err}
	}
	return plaintext, nil
}

// EncryptToPublicKey encrypts plaintext to a hex-encoded X25519 public key
// under an explicit context. The message and distribution operations below
// are the usual entry points; this generic form exists for counterpart
// implementations such as enclave simulators and cross-SDK harnesses.
func EncryptToPublicKey(publicKeyHex string, plaintext []byte, context EncryptionContext) (*EncryptedPayloadWire, error) {
	if context == "" {
		return nil, &ValidationError{Field: "context", Err: crypto.ErrEmptyContext}
	}
	return encryptTo(publicKeyHex, plaintext, context)
}

// DecryptWithPrivateKey decrypts an envelope with a hex-encoded private key
// under an explicit context. The generic counterpart of EncryptToPublicKey.
func DecryptWithPrivateKey(privateKeyHex string, w *EncryptedPayloadWire, context EncryptionContext) ([]byte, error) {
	if context == "" {
		return nil, &ValidationError{Field: "context", Err: crypto.ErrEmptyContext}
	}
	return decryptWith(privateKeyHex, w, context)
}

// EncryptMessageToEnclave encrypts an outbound message to the current
// enclave public key under the client-to-enclave transport context. Each
// call uses a fresh ephemeral key, so encrypting the same plaintext twice
// never yields the same envelope.
func EncryptMessageToEnclave(enclavePublicKeyHex, plaintext string) (*EncryptedPayloadWire, error) {
	return encryptTo(enclavePublicKeyHex, []byte(plaintext), ContextClientToEnclave)
}

// DecryptMessageFromEnclave decrypts an enclave response with the client's
// private key. The envelope must have been produced under the
// enclave-to-client transport context.
func DecryptMessageFromEnclave(clientPrivateKeyHex string, w *EncryptedPayloadWire) (string, error) {
	plaintext, err := decryptWith(clientPrivateKeyHex, w, ContextEnclaveToClient)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// EncryptStoredMessage encrypts one turn for at-rest storage, addressed to
// the owning user's own public key under the role's storage context. Only
// the holder of that private key can read history.
func EncryptStoredMessage(userPublicKeyHex, plaintext string, role Role) (*StoredMessage, error) {
	context, err := StorageContext(role)
	if err != nil {
		return nil, err
	}
	envelope, err := encryptTo(userPublicKeyHex, []byte(plaintext), context)
	if err != nil {
		return nil, err
	}
	return &StoredMessage{Role: role, EncryptedContent: envelope}, nil
}

// DecryptStoredMessage decrypts one stored turn with the user's private
// key, selecting the storage context by role. A role that does not match
// the context the envelope was written under fails authentication.
func DecryptStoredMessage(userPrivateKeyHex string, w *EncryptedPayloadWire, role Role) (string, error) {
	context, err := StorageContext(role)
	if err != nil {
		return "", err
	}
	plaintext, err := decryptWith(userPrivateKeyHex, w, context)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// DecryptStoredMessages decrypts a conversation history in order,
// dispatching the storage context per message role. Empty input yields
// empty output.
func DecryptStoredMessages(userPrivateKeyHex string, messages []StoredMessage) ([]string, error) {
	plaintexts := make([]string, 0, len(messages))
	for _, msg := range messages {
		plaintext, err := DecryptStoredMessage(userPrivateKeyHex, msg.EncryptedContent, msg.Role)
		if err != nil {
			return nil, err
		}
		plaintexts = append(plaintexts, plaintext)
	}
	return plaintexts, nil
}

// ReEncryptHistoryForTransport prepares conversation history for a new chat
// turn: each stored message is decrypted under its storage context with the
// user's key and re-encrypted under the client-to-enclave transport context
// to the current enclave public key. The enclave holds no durable state, so
// history is resent every turn without plaintext ever leaving the client.
// Output order matches input order.
func ReEncryptHistoryForTransport(userPrivateKeyHex, enclavePublicKeyHex string, messages []StoredMessage) ([]*EncryptedPayloadWire, error) {
	envelopes := make([]*EncryptedPayloadWire, 0, len(messages))
	for _, msg := range messages {
		context, err := StorageContext(msg.Role)
		if err != nil {
			return nil, err
		}
		plaintext, err := decryptWith(userPrivateKeyHex, msg.EncryptedContent, context)
		if err != nil {
			return nil, err
		}
		envelope, err := encryptTo(enclavePublicKeyHex, plaintext, ContextClientToEnclave)
		crypto.Zero(plaintext)
		if err != nil {
			return nil, err
		}
		envelopes = append(envelopes, envelope)
	}
	return envelopes, nil
}
