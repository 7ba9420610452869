// Package flash passes one-time messages across HTTP redirects.
//
// A handler stages a typed message before redirecting; the middleware
// serializes it into a short-lived cookie; the handler serving the
// redirected-to request extracts it; and the middleware clears the cookie
// on that response, so each message is delivered at most once.
//
// The middleware is standard net/http middleware and plugs straight into
// chi (or any router that composes func(http.Handler) http.Handler).
//
// # Quick Start
//
//	r := chi.NewRouter()
//	r.Use(flash.Middleware())
//
//	r.Post("/settings", func(w http.ResponseWriter, r *http.Request) {
//	    // ... save ...
//	    flash.WithRedirect("Settings saved", "/settings").ServeHTTP(w, r)
//	})
//
//	r.Get("/settings", func(w http.ResponseWriter, r *http.Request) {
//	    notice := flash.Get[string](r).Or("")
//	    // render page with notice
//	})
//
// Set stages a message directly when the Response wrapper does not fit:
//
//	if err := flash.Set(r, Notice{Kind: "success", Text: "Saved"}); err != nil {
//	    // non-serializable message or middleware missing
//	}
//	http.Redirect(w, r, "/settings", http.StatusSeeOther)
//
// # Semantics
//
// Messages are best-effort by design. A missing, expired, tampered, or
// wrongly-typed cookie extracts as empty; read-side problems never fail a
// request. Staging is last-write-wins within one response, and a message
// staged on a request that also delivered one replaces it. Write-side
// serialization failures surface immediately from Set, because a message
// type the codec cannot represent is a programmer error.
//
// All state is request-scoped. The incoming cookie is resolved once per
// request; repeated Get calls observe the same payload.
//
// # Cookie Protection
//
// The cookie value is plain (base64url) by default. WithSigned adds an
// HMAC-SHA256 signature so tampering reads as absence; WithEncrypted
// seals the payload with AES-256-GCM so the client cannot inspect it:
//
//	r.Use(flash.Middleware(
//	    flash.WithEncrypted(os.Getenv("COOKIE_SECRET")),
//	    flash.WithSecure(true),
//	))
//
// # Server-Side Storage
//
// WithStore keeps payloads out of the cookie entirely: the cookie carries
// an opaque token and the payload lives in a Store with a TTL. NewMemory
// suits tests and single-process apps; redistore backs the same interface
// with Redis for multi-instance deployments:
//
//	client := goredis.NewClient(&goredis.Options{Addr: "localhost:6379"})
//	r.Use(flash.Middleware(
//	    flash.WithStore(redistore.New(client)),
//	))
package flash
