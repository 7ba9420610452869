package flash

import "errors"

var (
	// ErrNoMiddleware is returned by Set when the flash middleware is not
	// installed on the request's handler chain.
	ErrNoMiddleware = errors.New("flash: middleware not installed")

	// ErrEncode is returned by Set when the configured codec cannot
	// serialize the message value.
	ErrEncode = errors.New("flash: message encoding failed")

	// ErrBadPayload is returned by JSONCodec.Decode when the payload is
	// valid JSON but lacks the envelope field.
	ErrBadPayload = errors.New("flash: malformed payload")

	// ErrNotFound is returned by Store implementations when a token does
	// not resolve to a stored payload.
	ErrNotFound = errors.New("flash: not found")

	// ErrExpired is returned by Store implementations when a payload
	// existed but its TTL has elapsed.
	ErrExpired = errors.New("flash: expired")
)
