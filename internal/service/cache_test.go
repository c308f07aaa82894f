package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"quicklink-go/config"
	"quicklink-go/constant"
	"quicklink-go/internal/apperrors"
	"quicklink-go/internal/repository"
)

func newCachedService(t *testing.T, store repository.LinkStore, opts Options) (*ShortLinkService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	pool := repository.NewRedisPool(config.RedisConfig{Addr: mr.Addr()}, zap.NewNop())
	t.Cleanup(func() { _ = pool.Close() })
	return NewShortLinkService(store, repository.NewLinkCache(pool, zap.NewNop()), opts, zap.NewNop()), mr
}

func TestCreate_UsesURLCache(t *testing.T) {
	ctx := context.Background()
	store := newMockLinkStore()
	svc, _ := newCachedService(t, store, Options{})

	code, err := svc.Create(ctx, "https://example.com")
	require.NoError(t, err)

	// 缓存命中时不访问存储
	store.findErr = assertUnused
	again, err := svc.Create(ctx, "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, code, again)
}

func TestResolve_NegativeCacheClearedOnCreate(t *testing.T) {
	ctx := context.Background()
	store := newMockLinkStore()
	svc, mr := newCachedService(t, store, Options{Generate: sequence("abc123")})

	_, err := svc.Resolve(ctx, "abc123")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.True(t, mr.Exists(constant.GetMissingCodeKey("abc123")))

	code, err := svc.Create(ctx, "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "abc123", code)
	assert.False(t, mr.Exists(constant.GetMissingCodeKey("abc123")))

	link, err := svc.Resolve(ctx, code)
	require.NoError(t, err)
	assert.Equal(t, int64(1), link.Clicks)
}

var assertUnused = errUnused{}

type errUnused struct{}

func (errUnused) Error() string { return "store must not be used" }
