package cache_test

import (
	"Scribe/dao/cache"
	"Scribe/internal/testutil"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLock(t *testing.T) {
	rds, mr := testutil.NewRedis(t)
	lock := cache.NewLockStorage(rds)
	ctx := context.Background()
	key := cache.ReactionKey("like", 1, 2)

	token, ok, err := lock.TryLock(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotEmpty(t, token)

	_, ok, err = lock.TryLock(ctx, key)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, lock.Unlock(ctx, key, token))
	_, ok, err = lock.TryLock(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)

	// 忘记释放的锁到期自动失效
	mr.FastForward(6 * time.Second)
	_, ok, err = lock.TryLock(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestLock_ExpiredOwnerCannotUnlock(t *testing.T) {
	rds, mr := testutil.NewRedis(t)
	lock := cache.NewLockStorage(rds)
	ctx := context.Background()
	key := cache.ReactionKey("favorite", 1, 2)

	stale, ok, err := lock.TryLock(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)

	// 第一个持有者超时，锁被第二个请求拿到
	mr.FastForward(6 * time.Second)
	owner, ok, err := lock.TryLock(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotEqual(t, stale, owner)

	require.NoError(t, lock.Unlock(ctx, key, stale))
	require.True(t, mr.Exists("scribe:lock:"+key))
	_, ok, err = lock.TryLock(ctx, key)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, lock.Unlock(ctx, key, owner))
	require.False(t, mr.Exists("scribe:lock:"+key))
}

func TestTokenRevoke(t *testing.T) {
	rds, mr := testutil.NewRedis(t)
	tokens := cache.NewTokenStorage(rds)
	ctx := context.Background()

	revoked, err := tokens.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	require.False(t, revoked)

	require.NoError(t, tokens.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))
	revoked, err = tokens.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	require.True(t, revoked)

	require.NoError(t, tokens.Revoke(ctx, "jti-2", time.Now().Add(-time.Minute)))
	revoked, err = tokens.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	require.False(t, revoked)

	mr.FastForward(2 * time.Hour)
	revoked, err = tokens.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	require.False(t, revoked)
}
