package flash

import "net/http"

// Response pairs an arbitrary response with an optional flash message of
// type T. It implements http.Handler: the flash-carrying constructors
// stage the message via Set before delegating to the wrapped handler, so
// the middleware picks it up when the response is written.
type Response[T any] struct {
	next    http.Handler
	message *T
}

// Plain wraps a response without a flash message. It exists so a route
// can keep a single Response[T] return shape for both its flashing and
// non-flashing branches.
func Plain[T any](h http.Handler) Response[T] {
	return Response[T]{next: h}
}

// WithMessage pairs a response with a flash message for the next request.
func WithMessage[T any](h http.Handler, msg T) Response[T] {
	return Response[T]{next: h, message: &msg}
}

// WithRedirect responds 303 See Other to location and flashes msg to the
// redirected-to request. This is the common case:
//
//	flash.WithRedirect("Saved!", "/settings").ServeHTTP(w, r)
func WithRedirect[T any](msg T, location string) Response[T] {
	redirect := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, location, http.StatusSeeOther)
	})
	return WithMessage(redirect, msg)
}

// ServeHTTP stages the message, if any, then serves the wrapped response.
// A staging failure is a programmer error (non-serializable message or
// missing middleware) and aborts the response with a 500.
func (resp Response[T]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if resp.message != nil {
		if err := Set(r, *resp.message); err != nil {
			if st := stateFrom(r); st != nil {
				st.cfg.logger.ErrorContext(r.Context(), "flash: staging message failed", "error", err)
			}
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	if resp.next != nil {
		resp.next.ServeHTTP(w, r)
	}
}
