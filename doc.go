// Package enclavechat implements the client-side end-to-end encryption core
// for the enclavechat zero-trust AI chat platform.
//
// The package guarantees that a server or intermediary never observes
// plaintext messages or unwrapped private keys. It covers three concerns:
//
//   - Key lifecycle: generate an X25519 keypair, wrap the private key under
//     both a passcode and a 20-digit recovery code (Argon2id), unlock it,
//     and rotate the passcode wrap.
//
//   - Message crypto: context-bound ECDH envelopes for client-to-enclave
//     transport, at-rest message storage, and re-encryption of stored
//     history for each chat turn.
//
//   - Organization key distribution: wrap one organization private key
//     individually to every member's public key so each member recovers
//     the identical shared secret with only their own key.
//
// The package performs no I/O and owns no persistent state; the backend
// store, the enclave, and the member directory are external collaborators
// that supply and consume the wire DTOs unmodified.
//
// Basic usage:
//
//	setup, err := enclavechat.GenerateAndEncryptKeys("hunter42")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// Persist setup via the backend:
//	req := enclavechat.ToStoreKeysRequest(setup)
//
//	// Later, unlock and send a message:
//	key, err := enclavechat.Unlock("hunter42", resp)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer key.Destroy()
//
//	envelope, err := enclavechat.EncryptMessageToEnclave(enclavePubHex, "hello")
//
// Only the passcode-derived wrapping can be rotated (ChangePasscode); there
// is no flow to replace the long-term keypair itself.
package enclavechat
