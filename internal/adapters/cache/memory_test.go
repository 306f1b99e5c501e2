package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salmangujjar-dev/ecommerce-shop-sub000/internal/domain"
)

func TestMemory_SetGetDel(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	require.NoError(t, m.Set(ctx, "k", "v", 0))
	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	require.NoError(t, m.Del(ctx, "k", "also-missing"))
	_, err = m.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestMemory_ExpiryCheckedOnRead(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", "v", time.Nanosecond))
	time.Sleep(2 * time.Millisecond)

	_, err := m.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}
