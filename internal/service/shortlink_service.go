package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"quicklink-go/internal/apperrors"
	"quicklink-go/internal/model"
	"quicklink-go/internal/repository"
	"quicklink-go/pkg/utils"
)

// DefaultMaxAttempts 短码冲突时最多生成的次数
const DefaultMaxAttempts = 10

type Options struct {
	BaseURL     string
	MaxAttempts int
	Generate    func() (string, error) // 默认 utils.GenerateShortCode
}

type ShortLinkService struct {
	store repository.LinkStore
	cache repository.LinkCache
	opts  Options
	log   *zap.Logger
}

func NewShortLinkService(store repository.LinkStore, cache repository.LinkCache, opts Options, log *zap.Logger) *ShortLinkService {
	if cache == nil {
		cache = repository.NopLinkCache{}
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.Generate == nil {
		opts.Generate = utils.GenerateShortCode
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")

	return &ShortLinkService{
		store: store,
		cache: cache,
		opts:  opts,
		log:   log,
	}
}

// Create 为 originalURL 分配短码并返回；同一 URL 重复提交返回已有短码
func (s *ShortLinkService) Create(ctx context.Context, originalURL string) (string, error) {
	originalURL = strings.TrimSpace(originalURL)
	if err := utils.ValidateOriginalURL(originalURL); err != nil {
		return "", apperrors.InvalidInput(err.Error())
	}

	if code, ok := s.cache.GetCodeByURL(ctx, originalURL); ok {
		return code, nil
	}

	existing, err := s.store.FindByOriginalURL(ctx, originalURL)
	if err == nil {
		s.cache.SetCodeByURL(ctx, originalURL, existing.ShortCode)
		return existing.ShortCode, nil
	}
	if !errors.Is(err, repository.ErrLinkNotFound) {
		s.log.Error("Failed to look up original url", zap.String("original_url", originalURL), zap.Error(err))
		return "", apperrors.StoreErrorDefault(err)
	}

	for attempt := 1; attempt <= s.opts.MaxAttempts; attempt++ {
		code, err := s.allocateShortCode(ctx)
		if err != nil {
			return "", err
		}

		link := &model.ShortLink{
			OriginalURL: originalURL,
			URLHash:     model.HashURL(originalURL),
			ShortCode:   code,
		}
		err = s.store.Create(ctx, link)
		if err == nil {
			s.cache.ClearMissing(ctx, code)
			s.cache.SetCodeByURL(ctx, originalURL, code)

			s.log.Info("Short link created", zap.String("short_code", code), zap.String("original_url", originalURL))
			return code, nil
		}

		// 并发提交同一 URL 时 url_hash 唯一索引冲突，返回先写入的记录
		if winner, findErr := s.store.FindByOriginalURL(ctx, originalURL); findErr == nil {
			s.cache.SetCodeByURL(ctx, originalURL, winner.ShortCode)
			return winner.ShortCode, nil
		}
		// 短码在检查之后被其他请求占用，换一个重试
		if taken, existsErr := s.store.ShortCodeExists(ctx, code); existsErr == nil && taken {
			s.log.Debug("Short code taken before insert", zap.String("short_code", code), zap.Int("attempt", attempt))
			continue
		}

		s.log.Error("Failed to create short link",
			zap.String("original_url", originalURL),
			zap.String("short_code", code),
			zap.Error(err))
		return "", apperrors.StoreErrorDefault(err)
	}

	return "", s.exhausted()
}

// allocateShortCode 生成未被占用的短码，超过 MaxAttempts 次返回错误
func (s *ShortLinkService) allocateShortCode(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= s.opts.MaxAttempts; attempt++ {
		code, err := s.opts.Generate()
		if err != nil {
			s.log.Error("Failed to generate short code", zap.Error(err))
			return "", apperrors.StoreErrorDefault(err)
		}

		exists, err := s.store.ShortCodeExists(ctx, code)
		if err != nil {
			s.log.Error("Failed to check short code", zap.String("short_code", code), zap.Error(err))
			return "", apperrors.StoreErrorDefault(err)
		}
		if !exists {
			return code, nil
		}

		s.log.Debug("Short code collision", zap.String("short_code", code), zap.Int("attempt", attempt))
	}

	return "", s.exhausted()
}

// exhausted 短码空间耗尽，具体原因只记日志
func (s *ShortLinkService) exhausted() *apperrors.AppError {
	err := fmt.Errorf("no free short code after %d attempts", s.opts.MaxAttempts)
	s.log.Error("Short code space exhausted", zap.Error(err))
	return apperrors.StoreErrorDefault(err)
}

// Resolve 查询短码对应的记录并将点击数加一
// 点击数是读后写，并发访问同一短码时可能丢失计数
func (s *ShortLinkService) Resolve(ctx context.Context, shortCode string) (*model.ShortLink, error) {
	link, err := s.find(ctx, shortCode)
	if err != nil {
		return nil, err
	}

	link.Clicks++
	if err := s.store.UpdateClicks(ctx, link); err != nil {
		s.log.Error("Failed to update clicks", zap.String("short_code", shortCode), zap.Error(err))
		return nil, apperrors.StoreErrorDefault(err)
	}
	return link, nil
}

// Stats 查询短码对应的记录，不修改数据
func (s *ShortLinkService) Stats(ctx context.Context, shortCode string) (*model.ShortLink, error) {
	return s.find(ctx, shortCode)
}

func (s *ShortLinkService) find(ctx context.Context, shortCode string) (*model.ShortLink, error) {
	if err := utils.ValidateShortCode(shortCode); err != nil {
		return nil, apperrors.NotFound("error.link_not_found")
	}

	if s.cache.IsMissing(ctx, shortCode) {
		return nil, apperrors.NotFound("error.link_not_found")
	}

	link, err := s.store.FindByShortCode(ctx, shortCode)
	if errors.Is(err, repository.ErrLinkNotFound) {
		s.cache.MarkMissing(ctx, shortCode)
		return nil, apperrors.NotFound("error.link_not_found")
	}
	if err != nil {
		s.log.Error("Failed to look up short code", zap.String("short_code", shortCode), zap.Error(err))
		return nil, apperrors.StoreErrorDefault(err)
	}
	return link, nil
}

// ShortURL 拼接完整短链地址
func (s *ShortLinkService) ShortURL(shortCode string) string {
	return s.opts.BaseURL + "/" + shortCode
}

// Health 检查存储与缓存是否可用
func (s *ShortLinkService) Health(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return apperrors.Unavailable("error.unavailable", fmt.Errorf("store: %w", err))
	}
	if err := s.cache.Ping(ctx); err != nil {
		return apperrors.Unavailable("error.unavailable", fmt.Errorf("cache: %w", err))
	}
	return nil
}

// Report 记录短链总量和总点击数，由定时任务调用
func (s *ShortLinkService) Report(ctx context.Context) error {
	if err := s.Health(ctx); err != nil {
		s.log.Warn("Health check failed", zap.Error(err))
		return err
	}

	summary, err := s.store.Summary(ctx)
	if err != nil {
		s.log.Error("Failed to summarize short links", zap.Error(err))
		return err
	}

	s.log.Info("Short link summary",
		zap.Int64("links", summary.Links),
		zap.Int64("clicks", summary.Clicks),
	)
	return nil
}
