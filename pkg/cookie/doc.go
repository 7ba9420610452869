// Package cookie reads and writes HTTP cookies with optional signing and
// encryption. The flash middleware delegates all Set-Cookie mechanics to
// this package; it is equally usable on its own.
//
// Plain cookies need no configuration:
//
//	m := cookie.New()
//	m.Set(w, "theme", "dark", 86400)
//	value, err := m.Get(r, "theme")
//
// A 32+ byte secret enables tamper detection (HMAC-SHA256) and sealing
// (AES-256-GCM):
//
//	m := cookie.New(
//		cookie.WithSecret(os.Getenv("COOKIE_SECRET")),
//		cookie.WithSecure(true),
//	)
//
//	err := m.SetSigned(w, "uid", userID, 86400)
//	uid, err := m.GetSigned(r, "uid")
//
//	err := m.SetEncrypted(w, "prefs", data, 86400)
//	prefs, err := m.GetEncrypted(r, "prefs")
//
// Verification failures return ErrBadSig or ErrDecrypt; callers decide
// whether that is fatal (the flash middleware treats both as absence).
package cookie
