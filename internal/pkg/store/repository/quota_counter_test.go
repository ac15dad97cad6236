package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCounter(t *testing.T) (*QuotaCounter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewQuotaCounter(client), mr
}

func TestIncrementIfBelowGrantsUntilQuota(t *testing.T) {
	counter, _ := newTestCounter(t)
	ctx := context.Background()

	for want := int64(2); want >= 0; want-- {
		allowed, remaining, err := counter.IncrementIfBelow(ctx, "quota:test", 3)
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, want, remaining)
	}

	allowed, remaining, err := counter.IncrementIfBelow(ctx, "quota:test", 3)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, int64(0), remaining)
}

func TestIncrementIfBelowRollsBackOvershoot(t *testing.T) {
	counter, mr := newTestCounter(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("quota:full", "5"))

	allowed, _, err := counter.IncrementIfBelow(ctx, "quota:full", 5)
	require.NoError(t, err)
	assert.False(t, allowed)

	// A failed attempt must not consume anything.
	used, err := counter.Used(ctx, "quota:full")
	require.NoError(t, err)
	assert.Equal(t, int64(5), used)
}

func TestIncrementIfBelowPropagatesRedisError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	counter := NewQuotaCounter(client)
	mock.ExpectIncr("quota:test").SetErr(errors.New("connection reset"))

	allowed, remaining, err := counter.IncrementIfBelow(context.Background(), "quota:test", 3)

	require.Error(t, err)
	assert.False(t, allowed)
	assert.Zero(t, remaining)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUsedMissingKeyIsZero(t *testing.T) {
	counter, _ := newTestCounter(t)

	used, err := counter.Used(context.Background(), "quota:absent")
	require.NoError(t, err)
	assert.Equal(t, int64(0), used)
}
