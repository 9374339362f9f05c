package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/hashimpk07/FMPortal-sub002/internal/cache"
	"github.com/hashimpk07/FMPortal-sub002/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	c := cache.NewMemory()
	ctx := context.Background()

	in := []domain.Centre{{ID: 1, Name: "Northgate"}, {ID: 2, Name: "Riverside"}}
	require.NoError(t, c.Set(ctx, "centres", in, time.Minute))

	var out []domain.Centre
	require.NoError(t, c.Get(ctx, "centres", &out))
	assert.Equal(t, in, out)
}

func TestMemoryMissOnAbsentKey(t *testing.T) {
	c := cache.NewMemory()

	var out []domain.Centre
	err := c.Get(context.Background(), "nope", &out)
	assert.ErrorIs(t, err, cache.ErrMiss)
}

func TestMemoryExpiry(t *testing.T) {
	c := cache.NewMemory()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", -time.Second))

	var out string
	err := c.Get(ctx, "k", &out)
	assert.ErrorIs(t, err, cache.ErrMiss)
}

func TestMemoryCloseClears(t *testing.T) {
	c := cache.NewMemory()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	require.NoError(t, c.Close())

	var out string
	assert.ErrorIs(t, c.Get(ctx, "k", &out), cache.ErrMiss)
}
