package crypto

const (
	// KeySize is the size of an X25519 key (public or private) in bytes.
	// It is also the size of every derived symmetric key.
	KeySize = 32

	// AESKeySize is the size of an AES-256 key in bytes.
	AESKeySize = 32
	// IVSize is the size of an AES-GCM IV in bytes. The enclavechat wire
	// format uses 16-byte IVs rather than the 12-byte GCM default.
	IVSize = 16
	// TagSize is the size of an AES-GCM authentication tag in bytes.
	TagSize = 16

	// SaltSize is the size of Argon2id and HKDF salts in bytes.
	SaltSize = 32

	// RecoveryCodeLength is the number of decimal digits in a recovery code.
	RecoveryCodeLength = 20
)

// Domain-separation context strings. The context is folded into HKDF key
// derivation, so envelopes produced under different contexts are
// cryptographically unrelated even to a holder of the right private key.
const (
	ContextClientToEnclave  = "client-to-enclave-transport"
	ContextEnclaveToClient  = "enclave-to-client-transport"
	ContextUserStorage      = "user-message-storage"
	ContextAssistantStorage = "assistant-message-storage"
	ContextOrgDistribution  = "org-key-distribution"
)

// AlgsCiphersuite is the canonical string representation of the algorithm suite.
var AlgsCiphersuite = "X25519:HKDF-SHA-512:AES-256-GCM:Argon2id"
