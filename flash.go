package flash

import (
	"bufio"
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"net"
	"net/http"

	"github.com/dmitrymomot/flash/pkg/cookie"
)

// DefaultCookieName is the cookie carrying the flash payload (or the
// store token when a server-side Store is configured).
const DefaultCookieName = "_flash"

// cookieMode selects how the cookie value is protected on the wire.
type cookieMode int

const (
	modePlain cookieMode = iota
	modeSigned
	modeEncrypted
)

type config struct {
	name       string
	mode       cookieMode
	codec      Codec
	store      Store
	logger     *slog.Logger
	cookieOpts []cookie.Option
	cookies    *cookie.Manager
}

// Option configures the flash middleware.
type Option func(*config)

// WithCookieName overrides the flash cookie name.
func WithCookieName(name string) Option {
	return func(cfg *config) {
		if name != "" {
			cfg.name = name
		}
	}
}

// WithCodec overrides the payload codec. Default: JSONCodec.
func WithCodec(c Codec) Option {
	return func(cfg *config) {
		if c != nil {
			cfg.codec = c
		}
	}
}

// WithStore keeps payloads server-side; the cookie carries only an opaque
// token. Without a store the payload itself rides in the cookie value.
func WithStore(s Store) Option {
	return func(cfg *config) {
		cfg.store = s
	}
}

// WithLogger sets the logger for read-side and store failures.
// Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// WithSigned signs the cookie value with HMAC-SHA256 so tampering is
// detected on read. The secret must be at least 32 bytes.
func WithSigned(secret string) Option {
	return func(cfg *config) {
		cfg.mode = modeSigned
		cfg.cookieOpts = append(cfg.cookieOpts, cookie.WithSecret(secret))
	}
}

// WithEncrypted encrypts the cookie value with AES-256-GCM so the payload
// is opaque to the client. The secret must be at least 32 bytes.
func WithEncrypted(secret string) Option {
	return func(cfg *config) {
		cfg.mode = modeEncrypted
		cfg.cookieOpts = append(cfg.cookieOpts, cookie.WithSecret(secret))
	}
}

// WithPath sets the cookie path. Default: "/".
func WithPath(path string) Option {
	return func(cfg *config) {
		cfg.cookieOpts = append(cfg.cookieOpts, cookie.WithPath(path))
	}
}

// WithDomain sets the cookie domain.
func WithDomain(domain string) Option {
	return func(cfg *config) {
		cfg.cookieOpts = append(cfg.cookieOpts, cookie.WithDomain(domain))
	}
}

// WithSecure sets the cookie Secure flag.
func WithSecure(secure bool) Option {
	return func(cfg *config) {
		cfg.cookieOpts = append(cfg.cookieOpts, cookie.WithSecure(secure))
	}
}

// WithHTTPOnly sets the cookie HttpOnly flag. Default: true.
func WithHTTPOnly(httpOnly bool) Option {
	return func(cfg *config) {
		cfg.cookieOpts = append(cfg.cookieOpts, cookie.WithHTTPOnly(httpOnly))
	}
}

// WithSameSite sets the cookie SameSite attribute. Default: Lax.
func WithSameSite(ss http.SameSite) Option {
	return func(cfg *config) {
		cfg.cookieOpts = append(cfg.cookieOpts, cookie.WithSameSite(ss))
	}
}

// Middleware returns the flash relay as standard net/http middleware,
// directly usable with chi's Use.
//
// On the request path it resolves the incoming flash cookie once and
// caches the payload for Get. On the response path, hooked in before the
// headers are flushed, it either sets the flash cookie for a message
// staged via Set (or a flashing Response), or clears the cookie that just
// delivered its message, so each message is delivered at most once.
//
// The flash cookie is session-scoped: no Max-Age, gone when the browser
// closes if never consumed.
func Middleware(opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		name:   DefaultCookieName,
		codec:  JSONCodec{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	cfg.cookies = cookie.New(cfg.cookieOpts...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			st := &state{cfg: cfg}

			// Presence is tracked separately from readability so that a
			// tampered or stale cookie is still cleared on the way out.
			if _, err := r.Cookie(cfg.name); err == nil {
				st.received = true

				payload, err := cfg.resolve(r)
				if err != nil {
					cfg.logger.DebugContext(r.Context(), "flash: dropping unreadable cookie", "error", err)
				} else {
					st.inbound = payload
				}
			}

			r = r.WithContext(context.WithValue(r.Context(), stateKey{}, st))

			rw := &relayWriter{ResponseWriter: w, cfg: cfg, st: st, req: r}
			next.ServeHTTP(rw, r)

			// Handler may finish without writing; headers are still open.
			rw.finalize()
		})
	}
}

// resolve reads the flash cookie according to the configured protection
// mode and resolves it to the encoded payload. A tampered signed or
// encrypted value reads as absent.
func (cfg *config) resolve(r *http.Request) ([]byte, error) {
	var raw string
	var err error

	switch cfg.mode {
	case modeSigned:
		raw, err = cfg.cookies.GetSigned(r, cfg.name)
	case modeEncrypted:
		raw, err = cfg.cookies.GetEncrypted(r, cfg.name)
	default:
		raw, err = cfg.cookies.Get(r, cfg.name)
	}
	if err != nil {
		return nil, err
	}

	return cfg.decodeValue(r.Context(), raw)
}

// sealCookie writes the flash cookie according to the configured
// protection mode, with no Max-Age (session cookie).
func (cfg *config) sealCookie(w http.ResponseWriter, value string) error {
	switch cfg.mode {
	case modeSigned:
		return cfg.cookies.SetSigned(w, cfg.name, value, 0)
	case modeEncrypted:
		return cfg.cookies.SetEncrypted(w, cfg.name, value, 0)
	default:
		cfg.cookies.Set(w, cfg.name, value, 0)
		return nil
	}
}

// encodeValue turns an encoded payload into the cookie value: a store
// token when a Store is configured, otherwise the payload itself,
// base64url-encoded in plain mode to stay within the cookie charset
// (signed and encrypted values are already cookie-safe).
func (cfg *config) encodeValue(ctx context.Context, payload []byte) (string, error) {
	if cfg.store != nil {
		return cfg.store.Save(ctx, payload)
	}
	if cfg.mode == modePlain {
		return base64.RawURLEncoding.EncodeToString(payload), nil
	}
	return string(payload), nil
}

// decodeValue resolves a cookie value back to the encoded payload. With
// a Store configured the value is a token and resolving it consumes the
// server-side payload; the cookie deletion at response time only tidies
// up the client.
func (cfg *config) decodeValue(ctx context.Context, raw string) ([]byte, error) {
	if cfg.store != nil {
		return cfg.store.Load(ctx, raw)
	}
	if cfg.mode == modePlain {
		return base64.RawURLEncoding.DecodeString(raw)
	}
	return []byte(raw), nil
}

// relayWriter hooks cookie emission in front of the first header flush.
// It mutates only the flash cookie, never other headers or the body.
type relayWriter struct {
	http.ResponseWriter
	cfg  *config
	st   *state
	req  *http.Request
	done bool
}

func (w *relayWriter) WriteHeader(code int) {
	w.finalize()
	w.ResponseWriter.WriteHeader(code)
}

func (w *relayWriter) Write(b []byte) (int, error) {
	w.finalize()
	return w.ResponseWriter.Write(b)
}

// Flush implements the http.Flusher interface. Flushing commits the
// headers, so the cookie mutations must be applied first.
func (w *relayWriter) Flush() {
	w.finalize()
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Hijack implements the http.Hijacker interface. A hijacked connection
// bypasses the response headers entirely, so the cookie mutations are
// abandoned rather than applied to a dead header map.
func (w *relayWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := w.ResponseWriter.(http.Hijacker); ok {
		w.done = true
		return hijacker.Hijack()
	}
	return nil, nil, http.ErrNotSupported
}

// Unwrap supports http.ResponseController.
func (w *relayWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// finalize applies the flash cookie mutations exactly once, before any
// response bytes go out. A staged message wins over clearing: its
// Set-Cookie replaces the consumed value at the client, so emitting a
// deletion alongside would discard the new message.
func (w *relayWriter) finalize() {
	if w.done {
		return
	}
	w.done = true

	cfg, st := w.cfg, w.st
	ctx := w.req.Context()

	if st.outbound != nil {
		value, err := cfg.encodeValue(ctx, st.outbound)
		if err == nil {
			err = cfg.sealCookie(w.ResponseWriter, value)
		}
		if err != nil {
			cfg.logger.ErrorContext(ctx, "flash: setting flash cookie failed", "error", err)
			if st.received {
				cfg.cookies.Delete(w.ResponseWriter, cfg.name)
			}
		}
		return
	}

	if st.received {
		cfg.cookies.Delete(w.ResponseWriter, cfg.name)
	}
}
