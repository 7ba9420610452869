package flash

import (
	"errors"
	"net/http"
)

// stateKey is the context key for the per-request relay state.
type stateKey struct{}

// state is the request-scoped slot shared between the middleware, Set and
// Get. The middleware stores a single pointer in the request context, so
// handler-side staging is visible to the response hook without any further
// context plumbing. The incoming cookie is resolved exactly once, at
// request time; every extraction observes the same cached payload.
type state struct {
	cfg      *config
	inbound  []byte // decoded payload from the incoming cookie, nil if none
	outbound []byte // encoded payload staged for the outgoing response
	received bool   // an incoming flash cookie was present
}

// stateFrom returns the relay state installed by the middleware,
// or nil if the middleware is not on the chain.
func stateFrom(r *http.Request) *state {
	st, _ := r.Context().Value(stateKey{}).(*state)
	return st
}

// Set stages msg as the flash message for the current response. The
// middleware picks it up when the response headers are written and stores
// it behind the flash cookie for exactly one follow-up request.
//
// The message is encoded eagerly, so a non-serializable value surfaces
// here as ErrEncode rather than after the handler has returned. Calling
// Set again before the response is written replaces the previous message
// (last write wins).
//
// Returns ErrNoMiddleware when the flash middleware is not installed.
func Set[T any](r *http.Request, msg T) error {
	st := stateFrom(r)
	if st == nil {
		return ErrNoMiddleware
	}

	data, err := st.cfg.codec.Encode(msg)
	if err != nil {
		return errors.Join(ErrEncode, err)
	}

	st.outbound = data
	return nil
}

// Get extracts the flash message delivered with the current request.
//
// The result is empty when no flash cookie arrived, when the middleware is
// not installed, or when the payload does not decode into T. Read-side
// failures never surface as errors: a tampered or stale cookie simply
// means no message.
func Get[T any](r *http.Request) Message[T] {
	st := stateFrom(r)
	if st == nil || st.inbound == nil {
		return Message[T]{}
	}

	var v T
	if err := st.cfg.codec.Decode(st.inbound, &v); err != nil {
		st.cfg.logger.DebugContext(r.Context(), "flash: dropping undecodable payload", "error", err)
		return Message[T]{}
	}

	return Message[T]{value: v, present: true}
}
