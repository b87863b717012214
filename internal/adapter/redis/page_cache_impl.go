package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/user/cat-census/internal/entity"
	"github.com/user/cat-census/pkg/utils"
)

const pageKeyPrefix = "census:page:"

// PageCacheRepoImpl provides a concrete implementation for the PageCacheRepository interface using Redis.
type PageCacheRepoImpl struct {
	client *redis.Client
}

// NewPageCacheRepo creates a new instance of PageCacheRepoImpl.
func NewPageCacheRepo(client *redis.Client) *PageCacheRepoImpl {
	return &PageCacheRepoImpl{client: client}
}

// generateKey creates a consistent Redis key for a given URL by hashing it.
func (r *PageCacheRepoImpl) generateKey(url string) string {
	return fmt.Sprintf("%s%s", pageKeyPrefix, utils.HashURL(url))
}

func (r *PageCacheRepoImpl) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Get returns the cached page for url, or nil when there is no entry.
func (r *PageCacheRepoImpl) Get(ctx context.Context, url string) (*entity.Page, error) {
	raw, err := r.client.Get(ctx, r.generateKey(url)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var page entity.Page
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("decode cached page: %w", err)
	}
	page.FromCache = true
	return &page, nil
}

// Set stores page under its URL. SETEX is atomic and sets the key with an expiry.
func (r *PageCacheRepoImpl) Set(ctx context.Context, page *entity.Page, expiry time.Duration) error {
	raw, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return r.client.SetEx(ctx, r.generateKey(page.URL), raw, expiry).Err()
}
