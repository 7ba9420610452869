package flash_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flash"
)

func TestMemory_SaveLoad(t *testing.T) {
	t.Parallel()

	store := flash.NewMemory(0)
	ctx := context.Background()
	payload := []byte(`{"_":"Saved!"}`)

	token, err := store.Save(ctx, payload)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := store.Load(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	// Load consumes: the token cannot deliver twice.
	_, err = store.Load(ctx, token)
	require.ErrorIs(t, err, flash.ErrNotFound)
}

func TestMemory_UniqueTokens(t *testing.T) {
	t.Parallel()

	store := flash.NewMemory(0)
	ctx := context.Background()

	a, err := store.Save(ctx, []byte("a"))
	require.NoError(t, err)
	b, err := store.Save(ctx, []byte("b"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestMemory_NotFound(t *testing.T) {
	t.Parallel()

	store := flash.NewMemory(0)

	_, err := store.Load(context.Background(), "unknown")
	require.ErrorIs(t, err, flash.ErrNotFound)
}

func TestMemory_Expiry(t *testing.T) {
	t.Parallel()

	store := flash.NewMemory(time.Millisecond)
	ctx := context.Background()

	token, err := store.Save(ctx, []byte("payload"))
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = store.Load(ctx, token)
	require.ErrorIs(t, err, flash.ErrExpired)

	// The expired read consumed the token.
	_, err = store.Load(ctx, token)
	require.ErrorIs(t, err, flash.ErrNotFound)
}
