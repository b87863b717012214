package repository

import (
	"context"
	"time"

	"github.com/user/cat-census/internal/entity"
)

// PageCacheRepository defines the interface for caching fetched pages.
type PageCacheRepository interface {
	// Get returns the cached page, or nil if there is none.
	Get(ctx context.Context, url string) (*entity.Page, error)
	// Set stores a page with a specific expiry time.
	Set(ctx context.Context, page *entity.Page, expiry time.Duration) error
	Ping(ctx context.Context) error
}
