package flash_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flash"
)

func TestMessage_Empty(t *testing.T) {
	t.Parallel()

	var m flash.Message[string]

	assert.False(t, m.Present())

	v, ok := m.Value()
	assert.False(t, ok)
	assert.Empty(t, v)

	assert.Equal(t, "fallback", m.Or("fallback"))

	assert.Panics(t, func() { m.Must() })
}

func TestMessage_Present(t *testing.T) {
	t.Parallel()

	// The only way to build a present Message is through extraction.
	mw := flash.Middleware()
	rec := serve(t, mw, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, flash.Set(r, 42))
		http.Redirect(w, r, "/next", http.StatusSeeOther)
	})

	serve(t, mw, func(w http.ResponseWriter, r *http.Request) {
		m := flash.Get[int](r)

		assert.True(t, m.Present())

		v, ok := m.Value()
		assert.True(t, ok)
		assert.Equal(t, 42, v)

		assert.Equal(t, 42, m.Or(0))
		assert.Equal(t, 42, m.Must())
	}, flashCookie(t, rec, "_flash"))
}
