package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"quicklink-go/config"
	"quicklink-go/internal/model"
)

// setupTestDB 创建内存 SQLite 数据库
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := OpenDB(config.DBConfig{Driver: "sqlite", DSN: ":memory:"}, zap.NewNop(), zap.NewAtomicLevelAt(zap.ErrorLevel))
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDB(db) })
	return db
}

func TestGormLinkStore_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	store := NewGormLinkStore(setupTestDB(t))

	link := &model.ShortLink{OriginalURL: "https://example.com/a", ShortCode: "a1b2c3"}
	require.NoError(t, store.Create(ctx, link))
	assert.NotZero(t, link.ID)
	assert.Equal(t, model.HashURL("https://example.com/a"), link.URLHash)
	assert.False(t, link.CreatedAt.IsZero())

	byCode, err := store.FindByShortCode(ctx, "a1b2c3")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a", byCode.OriginalURL)
	assert.Zero(t, byCode.Clicks)

	byURL, err := store.FindByOriginalURL(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, link.ID, byURL.ID)

	exists, err := store.ShortCodeExists(ctx, "a1b2c3")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGormLinkStore_NotFound(t *testing.T) {
	ctx := context.Background()
	store := NewGormLinkStore(setupTestDB(t))

	_, err := store.FindByShortCode(ctx, "ffffff")
	assert.ErrorIs(t, err, ErrLinkNotFound)

	_, err = store.FindByOriginalURL(ctx, "https://nowhere.example")
	assert.ErrorIs(t, err, ErrLinkNotFound)

	exists, err := store.ShortCodeExists(ctx, "ffffff")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormLinkStore_UniqueShortCode(t *testing.T) {
	ctx := context.Background()
	store := NewGormLinkStore(setupTestDB(t))

	require.NoError(t, store.Create(ctx, &model.ShortLink{OriginalURL: "https://one.example", ShortCode: "abcdef"}))
	err := store.Create(ctx, &model.ShortLink{OriginalURL: "https://two.example", ShortCode: "abcdef"})
	assert.Error(t, err)
}

func TestGormLinkStore_UpdateClicksKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	store := NewGormLinkStore(setupTestDB(t))

	link := &model.ShortLink{OriginalURL: "https://example.com", ShortCode: "c0ffee"}
	require.NoError(t, store.Create(ctx, link))

	loaded, err := store.FindByShortCode(ctx, "c0ffee")
	require.NoError(t, err)
	createdAt := loaded.CreatedAt

	loaded.Clicks++
	require.NoError(t, store.UpdateClicks(ctx, loaded))

	reloaded, err := store.FindByShortCode(ctx, "c0ffee")
	require.NoError(t, err)
	assert.Equal(t, int64(1), reloaded.Clicks)
	assert.True(t, createdAt.Equal(reloaded.CreatedAt))
}

func TestGormLinkStore_Summary(t *testing.T) {
	ctx := context.Background()
	store := NewGormLinkStore(setupTestDB(t))

	empty, err := store.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, LinkSummary{}, empty)

	require.NoError(t, store.Create(ctx, &model.ShortLink{OriginalURL: "https://one.example", ShortCode: "000001", Clicks: 2}))
	require.NoError(t, store.Create(ctx, &model.ShortLink{OriginalURL: "https://two.example", ShortCode: "000002", Clicks: 5}))

	summary, err := store.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, LinkSummary{Links: 2, Clicks: 7}, summary)

	assert.NoError(t, store.Ping(ctx))
}

func TestOpenDB_UnsupportedDriver(t *testing.T) {
	_, err := OpenDB(config.DBConfig{Driver: "mongodb", DSN: "mongodb://localhost"}, zap.NewNop(), zap.NewAtomicLevel())
	assert.ErrorContains(t, err, "unsupported db driver")
}
