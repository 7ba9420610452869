package cookie

import "errors"

var (
	// ErrNotFound means the named cookie is absent from the request.
	ErrNotFound = errors.New("cookie: not found")

	// ErrNoSecret means a signed or encrypted operation was attempted
	// without a configured secret.
	ErrNoSecret = errors.New("cookie: secret required")

	// ErrBadSig means signature verification failed: the value was
	// tampered with or malformed.
	ErrBadSig = errors.New("cookie: invalid signature")

	// ErrDecrypt means the ciphertext did not authenticate: tampering
	// or corruption.
	ErrDecrypt = errors.New("cookie: decryption failed")
)
