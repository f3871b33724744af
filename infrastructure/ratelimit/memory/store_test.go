package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Allow(t *testing.T) {
	store := NewStore(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := store.Allow(ctx, "127.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok, "request %d should be allowed", i+1)
	}

	ok, err := store.Allow(ctx, "127.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)

	// Different key has its own bucket
	ok, err = store.Allow(ctx, "192.168.1.1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStore_Refills(t *testing.T) {
	store := NewStore(2, 200*time.Millisecond)
	ctx := context.Background()

	store.Allow(ctx, "k")
	store.Allow(ctx, "k")
	ok, _ := store.Allow(ctx, "k")
	assert.False(t, ok)

	time.Sleep(150 * time.Millisecond)

	ok, _ = store.Allow(ctx, "k")
	assert.True(t, ok)
}

func TestStore_CancelledContext(t *testing.T) {
	store := NewStore(1, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Allow(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewStore_Defaults(t *testing.T) {
	store := NewStore(0, 0)

	assert.Equal(t, 1, store.Limit())
	assert.Equal(t, time.Minute, store.Window())
}
