package flash

// Message is the typed result of extracting a flash message from a
// request. It is either present (a valid payload decoded into T) or
// empty; a missing, corrupted, or foreign-typed cookie yields the empty
// state, never an error.
type Message[T any] struct {
	value   T
	present bool
}

// Present reports whether a flash message was delivered with the request.
func (m Message[T]) Present() bool {
	return m.present
}

// Value returns the message and whether it is present.
func (m Message[T]) Value() (T, bool) {
	return m.value, m.present
}

// Or returns the message, or fallback when none is present.
func (m Message[T]) Or(fallback T) T {
	if !m.present {
		return fallback
	}
	return m.value
}

// Must returns the message and panics when none is present.
// Use only when the route is reachable exclusively via a flashing
// redirect; prefer Value or Or everywhere else.
func (m Message[T]) Must() T {
	if !m.present {
		panic("flash: Must called on empty message")
	}
	return m.value
}
