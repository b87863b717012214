package cache

import (
	"context"
	"time"

	"github.com/user/cat-census/internal/entity"
	"github.com/user/cat-census/internal/repository"
	"go.uber.org/zap"
)

// CachingFetcher serves pages from a PageCacheRepository and falls back to
// the wrapped Fetcher on a miss. Error-status pages are never stored, so a
// transient 5xx is retried on the next run. Cache failures never fail a fetch.
type CachingFetcher struct {
	next   repository.Fetcher
	cache  repository.PageCacheRepository
	expiry time.Duration
	logger *zap.Logger
}

func NewCachingFetcher(next repository.Fetcher, cache repository.PageCacheRepository, expiry time.Duration, logger *zap.Logger) *CachingFetcher {
	return &CachingFetcher{next: next, cache: cache, expiry: expiry, logger: logger}
}

func (f *CachingFetcher) Fetch(ctx context.Context, url string) (*entity.Page, error) {
	cached, err := f.cache.Get(ctx, url)
	if err != nil {
		f.logger.Warn("page cache lookup failed", zap.String("url", url), zap.Error(err))
	}
	if cached != nil {
		f.logger.Debug("page served from cache", zap.String("url", url))
		return cached, nil
	}

	page, err := f.next.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if page.HasBody() && !page.IsError() {
		if err := f.cache.Set(ctx, page, f.expiry); err != nil {
			f.logger.Warn("page cache store failed", zap.String("url", url), zap.Error(err))
		}
	}
	return page, nil
}
