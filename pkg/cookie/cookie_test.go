package cookie_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrymomot/flash/pkg/cookie"
)

const testSecret = "this-is-a-32-byte-or-longer-key!"

func TestNew(t *testing.T) {
	m := cookie.New()
	if m == nil {
		t.Fatal("New() returned nil")
	}
}

func TestNewWithOptions(t *testing.T) {
	m := cookie.New(
		cookie.WithSecret(testSecret),
		cookie.WithDomain("example.com"),
		cookie.WithPath("/app"),
		cookie.WithSecure(true),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteStrictMode),
	)
	if m == nil {
		t.Fatal("New() returned nil")
	}
}

func TestPlainCookies(t *testing.T) {
	m := cookie.New()

	t.Run("get non-existent cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err := m.Get(r, "missing")
		if !errors.Is(err, cookie.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("set and get cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		m.Set(w, "name", "value", 3600)

		cookies := w.Result().Cookies()
		if len(cookies) != 1 {
			t.Fatalf("expected 1 cookie, got %d", len(cookies))
		}

		c := cookies[0]
		if c.Name != "name" || c.Value != "value" {
			t.Errorf("cookie = %s=%s, want name=value", c.Name, c.Value)
		}
		if c.MaxAge != 3600 {
			t.Errorf("MaxAge = %d, want 3600", c.MaxAge)
		}

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(c)

		val, err := m.Get(r, "name")
		if err != nil {
			t.Fatalf("Get() error: %v", err)
		}
		if val != "value" {
			t.Errorf("Get() = %q, want %q", val, "value")
		}
	})

	t.Run("session cookie has no max-age", func(t *testing.T) {
		w := httptest.NewRecorder()
		m.Set(w, "name", "value", 0)

		c := w.Result().Cookies()[0]
		if c.MaxAge != 0 {
			t.Errorf("MaxAge = %d, want 0", c.MaxAge)
		}
	})

	t.Run("delete cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		m.Delete(w, "name")

		cookies := w.Result().Cookies()
		if len(cookies) != 1 {
			t.Fatalf("expected 1 cookie, got %d", len(cookies))
		}

		c := cookies[0]
		if c.Value != "" {
			t.Errorf("Value = %q, want empty", c.Value)
		}
		if c.MaxAge != -1 {
			t.Errorf("MaxAge = %d, want -1", c.MaxAge)
		}
	})
}

func TestSignedCookies(t *testing.T) {
	t.Run("no secret returns error", func(t *testing.T) {
		m := cookie.New()
		w := httptest.NewRecorder()

		err := m.SetSigned(w, "uid", "data", 3600)
		if !errors.Is(err, cookie.ErrNoSecret) {
			t.Errorf("SetSigned() error = %v, want ErrNoSecret", err)
		}

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err = m.GetSigned(r, "uid")
		if !errors.Is(err, cookie.ErrNoSecret) {
			t.Errorf("GetSigned() error = %v, want ErrNoSecret", err)
		}
	})

	t.Run("short secret is ignored", func(t *testing.T) {
		m := cookie.New(cookie.WithSecret("short"))
		w := httptest.NewRecorder()

		err := m.SetSigned(w, "uid", "data", 3600)
		if !errors.Is(err, cookie.ErrNoSecret) {
			t.Errorf("SetSigned() error = %v, want ErrNoSecret", err)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		m := cookie.New(cookie.WithSecret(testSecret))
		w := httptest.NewRecorder()

		if err := m.SetSigned(w, "uid", "user-42", 3600); err != nil {
			t.Fatalf("SetSigned() error: %v", err)
		}

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(w.Result().Cookies()[0])

		val, err := m.GetSigned(r, "uid")
		if err != nil {
			t.Fatalf("GetSigned() error: %v", err)
		}
		if val != "user-42" {
			t.Errorf("GetSigned() = %q, want %q", val, "user-42")
		}
	})

	t.Run("tampered value is rejected", func(t *testing.T) {
		m := cookie.New(cookie.WithSecret(testSecret))
		w := httptest.NewRecorder()

		if err := m.SetSigned(w, "uid", "user-42", 3600); err != nil {
			t.Fatalf("SetSigned() error: %v", err)
		}

		c := w.Result().Cookies()[0]
		encoded, sig, _ := strings.Cut(c.Value, ".")
		c.Value = encoded + "x." + sig

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(c)

		_, err := m.GetSigned(r, "uid")
		if !errors.Is(err, cookie.ErrBadSig) {
			t.Errorf("GetSigned() error = %v, want ErrBadSig", err)
		}
	})

	t.Run("missing separator is rejected", func(t *testing.T) {
		m := cookie.New(cookie.WithSecret(testSecret))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "uid", Value: "no-separator"})

		_, err := m.GetSigned(r, "uid")
		if !errors.Is(err, cookie.ErrBadSig) {
			t.Errorf("GetSigned() error = %v, want ErrBadSig", err)
		}
	})
}

func TestEncryptedCookies(t *testing.T) {
	t.Run("no secret returns error", func(t *testing.T) {
		m := cookie.New()
		w := httptest.NewRecorder()

		err := m.SetEncrypted(w, "prefs", "data", 3600)
		if !errors.Is(err, cookie.ErrNoSecret) {
			t.Errorf("SetEncrypted() error = %v, want ErrNoSecret", err)
		}

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err = m.GetEncrypted(r, "prefs")
		if !errors.Is(err, cookie.ErrNoSecret) {
			t.Errorf("GetEncrypted() error = %v, want ErrNoSecret", err)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		m := cookie.New(cookie.WithSecret(testSecret))
		w := httptest.NewRecorder()

		if err := m.SetEncrypted(w, "prefs", `{"theme":"dark"}`, 3600); err != nil {
			t.Fatalf("SetEncrypted() error: %v", err)
		}

		c := w.Result().Cookies()[0]
		if strings.Contains(c.Value, "dark") {
			t.Error("ciphertext leaks plaintext")
		}

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(c)

		val, err := m.GetEncrypted(r, "prefs")
		if err != nil {
			t.Fatalf("GetEncrypted() error: %v", err)
		}
		if val != `{"theme":"dark"}` {
			t.Errorf("GetEncrypted() = %q", val)
		}
	})

	t.Run("tampered ciphertext is rejected", func(t *testing.T) {
		m := cookie.New(cookie.WithSecret(testSecret))
		w := httptest.NewRecorder()

		if err := m.SetEncrypted(w, "prefs", "data", 3600); err != nil {
			t.Fatalf("SetEncrypted() error: %v", err)
		}

		c := w.Result().Cookies()[0]
		c.Value = "AAAA" + c.Value[4:]

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(c)

		_, err := m.GetEncrypted(r, "prefs")
		if !errors.Is(err, cookie.ErrDecrypt) {
			t.Errorf("GetEncrypted() error = %v, want ErrDecrypt", err)
		}
	})

	t.Run("garbage value is rejected", func(t *testing.T) {
		m := cookie.New(cookie.WithSecret(testSecret))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "prefs", Value: "not-base64!!"})

		_, err := m.GetEncrypted(r, "prefs")
		if !errors.Is(err, cookie.ErrDecrypt) {
			t.Errorf("GetEncrypted() error = %v, want ErrDecrypt", err)
		}
	})
}
