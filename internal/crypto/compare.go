package crypto

import "crypto/subtle"

// SecureCompare reports whether a and b are equal in length and content
// without leaking the position of the first difference through timing.
// Use it for any raw secret comparison outside the AEAD paths.
func SecureCompare(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
