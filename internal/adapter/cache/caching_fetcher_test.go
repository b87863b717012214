package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/cat-census/internal/entity"
	"go.uber.org/zap/zaptest"
)

type countingFetcher struct {
	mu    sync.Mutex
	calls int
	err   error
	// statuses are served in order; the last one repeats.
	statuses []int
}

func (f *countingFetcher) Fetch(_ context.Context, url string) (*entity.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	status := 200
	if n := len(f.statuses); n > 0 {
		status = f.statuses[min(f.calls, n)-1]
	}
	return &entity.Page{URL: url, StatusCode: status, Body: []byte("body")}, nil
}

type memoryCache struct {
	pages  map[string]*entity.Page
	getErr error
}

func (c *memoryCache) Get(_ context.Context, url string) (*entity.Page, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	p, ok := c.pages[url]
	if !ok {
		return nil, nil
	}
	cp := *p
	cp.FromCache = true
	return &cp, nil
}

func (c *memoryCache) Set(_ context.Context, page *entity.Page, _ time.Duration) error {
	c.pages[page.URL] = page
	return nil
}

func (c *memoryCache) Ping(context.Context) error { return nil }

func TestCachingFetcher(t *testing.T) {
	next := &countingFetcher{}
	cache := &memoryCache{pages: map[string]*entity.Page{}}
	f := NewCachingFetcher(next, cache, time.Minute, zaptest.NewLogger(t))
	ctx := context.Background()

	page, err := f.Fetch(ctx, "https://example.org/a")
	require.NoError(t, err)
	assert.False(t, page.FromCache)

	page, err = f.Fetch(ctx, "https://example.org/a")
	require.NoError(t, err)
	assert.True(t, page.FromCache)
	assert.Equal(t, 1, next.calls)
}

func TestCachingFetcherDegradesOnCacheError(t *testing.T) {
	next := &countingFetcher{}
	cache := &memoryCache{pages: map[string]*entity.Page{}, getErr: errors.New("connection refused")}
	f := NewCachingFetcher(next, cache, time.Minute, zaptest.NewLogger(t))

	page, err := f.Fetch(context.Background(), "https://example.org/a")
	require.NoError(t, err)
	assert.Equal(t, "body", string(page.Body))
	assert.Equal(t, 1, next.calls)
}

func TestCachingFetcherPassesTransportErrors(t *testing.T) {
	next := &countingFetcher{err: errors.New("dial tcp: refused")}
	cache := &memoryCache{pages: map[string]*entity.Page{}}
	f := NewCachingFetcher(next, cache, time.Minute, zaptest.NewLogger(t))

	page, err := f.Fetch(context.Background(), "https://example.org/a")
	require.Error(t, err)
	assert.Nil(t, page)
	assert.Empty(t, cache.pages)
}

func TestCachingFetcherSkipsErrorPages(t *testing.T) {
	next := &countingFetcher{statuses: []int{503, 200}}
	cache := &memoryCache{pages: map[string]*entity.Page{}}
	f := NewCachingFetcher(next, cache, time.Minute, zaptest.NewLogger(t))
	ctx := context.Background()

	page, err := f.Fetch(ctx, "https://example.org/listing")
	require.NoError(t, err)
	assert.Equal(t, 503, page.StatusCode)
	assert.Empty(t, cache.pages)

	page, err = f.Fetch(ctx, "https://example.org/listing")
	require.NoError(t, err)
	assert.Equal(t, 200, page.StatusCode)
	assert.False(t, page.FromCache)
	assert.Equal(t, 2, next.calls)

	page, err = f.Fetch(ctx, "https://example.org/listing")
	require.NoError(t, err)
	assert.True(t, page.FromCache)
	assert.Equal(t, 2, next.calls)
}
