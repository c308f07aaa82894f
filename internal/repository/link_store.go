package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"quicklink-go/internal/model"
)

// ErrLinkNotFound 查询不到短链记录
var ErrLinkNotFound = errors.New("short link not found")

// LinkSummary 短链总量统计
type LinkSummary struct {
	Links  int64
	Clicks int64
}

// LinkStore 短链持久化接口，只做精确匹配查询
type LinkStore interface {
	FindByOriginalURL(ctx context.Context, originalURL string) (*model.ShortLink, error)
	FindByShortCode(ctx context.Context, shortCode string) (*model.ShortLink, error)
	ShortCodeExists(ctx context.Context, shortCode string) (bool, error)
	Create(ctx context.Context, link *model.ShortLink) error
	UpdateClicks(ctx context.Context, link *model.ShortLink) error
	Summary(ctx context.Context) (LinkSummary, error)
	Ping(ctx context.Context) error
}

type GormLinkStore struct {
	db *gorm.DB
}

func NewGormLinkStore(db *gorm.DB) *GormLinkStore {
	return &GormLinkStore{db: db}
}

func (s *GormLinkStore) FindByOriginalURL(ctx context.Context, originalURL string) (*model.ShortLink, error) {
	var link model.ShortLink
	err := s.db.WithContext(ctx).
		Where("url_hash = ? AND original_url = ?", model.HashURL(originalURL), originalURL).
		First(&link).Error
	return found(&link, err)
}

func (s *GormLinkStore) FindByShortCode(ctx context.Context, shortCode string) (*model.ShortLink, error) {
	var link model.ShortLink
	err := s.db.WithContext(ctx).Where("short_code = ?", shortCode).First(&link).Error
	return found(&link, err)
}

func (s *GormLinkStore) ShortCodeExists(ctx context.Context, shortCode string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.ShortLink{}).
		Where("short_code = ?", shortCode).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormLinkStore) Create(ctx context.Context, link *model.ShortLink) error {
	if link.URLHash == "" {
		link.URLHash = model.HashURL(link.OriginalURL)
	}
	return s.db.WithContext(ctx).Create(link).Error
}

// UpdateClicks 写回调用方读到并修改过的点击数（非原子，并发时后写覆盖先写）
func (s *GormLinkStore) UpdateClicks(ctx context.Context, link *model.ShortLink) error {
	return s.db.WithContext(ctx).Model(link).Update("clicks", link.Clicks).Error
}

func (s *GormLinkStore) Summary(ctx context.Context) (LinkSummary, error) {
	var summary LinkSummary
	err := s.db.WithContext(ctx).Model(&model.ShortLink{}).
		Select("COUNT(*) AS links, COALESCE(SUM(clicks), 0) AS clicks").
		Scan(&summary).Error
	return summary, err
}

func (s *GormLinkStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func found(link *model.ShortLink, err error) (*model.ShortLink, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLinkNotFound
	}
	if err != nil {
		return nil, err
	}
	return link, nil
}
