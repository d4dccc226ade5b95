// Package crypto provides cryptographic primitives for the enclavechat
// end-to-end encryption protocol. It implements elliptic-curve key agreement,
// password-based key derivation, and authenticated encryption using modern,
// standardized algorithms.
//
// # Algorithm Suite
//
// The package uses the following cryptographic algorithms:
//
//   - X25519 (RFC 7748): Elliptic-curve Diffie-Hellman key agreement for
//     establishing shared secrets between a sender's ephemeral keypair and
//     a recipient's long-term public key.
//
//   - HKDF-SHA-512 (RFC 5869): Key derivation function turning ECDH shared
//     secrets into uniform AES keys with domain separation via a context
//     string folded into the info parameter.
//
//   - AES-256-GCM: Authenticated encryption with associated data (AEAD)
//     for message content and wrapped private keys. A 16-byte IV and a
//     detached 16-byte tag are used to match the enclavechat wire format.
//
//   - Argon2id (RFC 9106): Memory-hard password hashing turning a
//     low-entropy passcode or recovery code into a 32-byte wrapping key
//     resistant to offline brute force.
//
// # Security Model
//
// The envelope scheme ([EncryptToPublicKey] / [DecryptWithPrivateKey])
// provides:
//
//   - Confidentiality: only the holder of the recipient private key can
//     decrypt an envelope.
//   - Integrity: tampering with any envelope field causes decryption to fail.
//   - Domain separation: the encryption context is part of key derivation,
//     so an envelope produced for one purpose cannot be decrypted under
//     another, even by the legitimate key holder.
//   - Single-use keys: every envelope derives a brand-new AES key from a
//     fresh ephemeral X25519 exchange, and the derived key is represented
//     as a consume-once value that cannot seal twice. Random 16-byte IVs
//     are therefore never reused under the same key.
//
// # Key Management
//
// Use [GenerateKeypair] to create a new X25519 keypair. The public key can
// be recomputed from the private key with [KeypairFromPrivateKey]. Keep
// private keys secure: they should never be logged, transmitted unwrapped,
// or stored in version control.
package crypto
