package cookie

import (
	"errors"
	"net/http"
)

// Manager reads and writes cookies with a fixed set of attributes
// (path, domain, Secure, HttpOnly, SameSite) applied to every cookie it
// emits. With a secret configured it can additionally sign or encrypt
// cookie values; without one, signed and encrypted operations return
// ErrNoSecret.
type Manager struct {
	secret   []byte // nil = plain cookies only
	domain   string
	path     string
	secure   bool
	httpOnly bool
	sameSite http.SameSite
}

// New creates a Manager. Defaults: path "/", HttpOnly, SameSite=Lax.
func New(opts ...Option) *Manager {
	m := &Manager{
		path:     "/",
		httpOnly: true,
		sameSite: http.SameSiteLaxMode,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns a plain cookie value.
// Returns ErrNotFound when the cookie is absent.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Set writes a plain cookie. maxAge in seconds; 0 means session-scoped.
func (m *Manager) Set(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, m.cookie(name, value, maxAge))
}

// Delete marks a cookie for removal at the client: empty value with an
// immediate expiry.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, m.cookie(name, "", -1))
}

// cookie builds an http.Cookie with the manager's attributes.
func (m *Manager) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     m.path,
		Domain:   m.domain,
		MaxAge:   maxAge,
		Secure:   m.secure,
		HttpOnly: m.httpOnly,
		SameSite: m.sameSite,
	}
}
