package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestInMemoryKeyStore_Claim(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := newInMemoryKeyStore(clock.now)

	t.Run("first claim wins", func(t *testing.T) {
		ok, err := store.Claim(ctx, "k1", time.Hour)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.Claim(ctx, "k1", time.Hour)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("expired claim can be taken again", func(t *testing.T) {
		ok, _ := store.Claim(ctx, "k2", time.Minute)
		require.True(t, ok)

		clock.advance(time.Minute)
		ok, err := store.Claim(ctx, "k2", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("release frees the key", func(t *testing.T) {
		ok, _ := store.Claim(ctx, "k3", time.Hour)
		require.True(t, ok)
		require.NoError(t, store.Release(ctx, "k3"))

		ok, err := store.Claim(ctx, "k3", time.Hour)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestInMemoryKeyStore_Sweep(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := newInMemoryKeyStore(clock.now)

	_, _ = store.Claim(ctx, "short", time.Second)
	_, _ = store.Claim(ctx, "long", time.Hour)
	assert.Equal(t, 2, store.Len())

	clock.advance(time.Minute)
	store.sweep()
	assert.Equal(t, 1, store.Len())
}

func TestInMemoryKeyStore_CloseIsIdempotent(t *testing.T) {
	store := NewInMemoryKeyStore()
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}
