package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"net/http"
	"strings"
)

// GetSigned returns a signed cookie value after verifying its HMAC.
// Returns ErrNoSecret without a secret, ErrBadSig on any verification
// failure (malformed encoding included).
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	if m.secret == nil {
		return "", ErrNoSecret
	}

	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}

	// Wire format: base64url(value).base64url(hmac)
	encoded, encodedSig, ok := strings.Cut(raw, ".")
	if !ok {
		return "", ErrBadSig
	}

	value, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrBadSig
	}

	sig, err := base64.RawURLEncoding.DecodeString(encodedSig)
	if err != nil {
		return "", ErrBadSig
	}

	if !hmac.Equal(sig, m.sign(value)) {
		return "", ErrBadSig
	}

	return string(value), nil
}

// SetSigned writes a cookie whose value carries an HMAC-SHA256 signature.
// Returns ErrNoSecret without a secret.
func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, maxAge int) error {
	if m.secret == nil {
		return ErrNoSecret
	}

	sig := m.sign([]byte(value))
	encoded := base64.RawURLEncoding.EncodeToString([]byte(value)) +
		"." + base64.RawURLEncoding.EncodeToString(sig)

	http.SetCookie(w, m.cookie(name, encoded, maxAge))
	return nil
}

// GetEncrypted returns a decrypted cookie value.
// Returns ErrNoSecret without a secret, ErrDecrypt when the ciphertext
// does not authenticate.
func (m *Manager) GetEncrypted(r *http.Request, name string) (string, error) {
	if m.secret == nil {
		return "", ErrNoSecret
	}

	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}

	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return "", ErrDecrypt
	}

	plaintext, err := m.decrypt(data)
	if err != nil {
		return "", ErrDecrypt
	}

	return string(plaintext), nil
}

// SetEncrypted writes a cookie sealed with AES-256-GCM.
// Returns ErrNoSecret without a secret.
func (m *Manager) SetEncrypted(w http.ResponseWriter, name, value string, maxAge int) error {
	if m.secret == nil {
		return ErrNoSecret
	}

	ciphertext, err := m.encrypt([]byte(value))
	if err != nil {
		return err
	}

	http.SetCookie(w, m.cookie(name, base64.RawURLEncoding.EncodeToString(ciphertext), maxAge))
	return nil
}

// sign computes the HMAC-SHA256 of value under the manager's secret.
func (m *Manager) sign(value []byte) []byte {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write(value)
	return mac.Sum(nil)
}

// aead builds the AES-256-GCM cipher, deriving the key from the secret.
func (m *Manager) aead() (cipher.AEAD, error) {
	key := sha256.Sum256(m.secret)

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}

	return cipher.NewGCM(block)
}

// encrypt seals plaintext, prepending the random nonce.
func (m *Manager) encrypt(plaintext []byte) ([]byte, error) {
	aead, err := m.aead()
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// decrypt opens a nonce-prefixed ciphertext.
func (m *Manager) decrypt(data []byte) ([]byte, error) {
	aead, err := m.aead()
	if err != nil {
		return nil, err
	}

	if len(data) < aead.NonceSize() {
		return nil, ErrDecrypt
	}

	nonce, ciphertext := data[:aead.NonceSize()], data[aead.NonceSize():]
	return aead.Open(nil, nonce, ciphertext, nil)
}
