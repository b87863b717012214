package resty_fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/user/cat-census/internal/entity"
	"github.com/user/cat-census/pkg/metrics"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Options configure the HTTP fetcher. Zero values keep resty's defaults.
type Options struct {
	UserAgent         string
	Timeout           time.Duration
	RequestsPerSecond float64
}

type RestyFetcher struct {
	client  *resty.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewRestyFetcher creates a plain HTTP fetcher.
func NewRestyFetcher(opts Options, logger *zap.Logger) *RestyFetcher {
	client := resty.New()
	if opts.UserAgent != "" {
		client.SetHeader("User-Agent", opts.UserAgent)
	}
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	f := &RestyFetcher{client: client, logger: logger}
	if opts.RequestsPerSecond > 0 {
		burst := int(opts.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		f.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}
	return f
}

// Fetch issues a GET. Error statuses such as 403 are not treated as
// failures: the body is returned with its status so it can still be parsed.
func (f *RestyFetcher) Fetch(ctx context.Context, url string) (*entity.Page, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	start := time.Now()
	res, err := f.client.R().
		SetContext(ctx).
		Get(url)
	metrics.FetchDuration.WithLabelValues("http").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}

	if res.IsError() {
		f.logger.Debug("received error status", zap.String("url", url), zap.Int("status", res.StatusCode()))
	}

	return &entity.Page{
		URL:        url,
		StatusCode: res.StatusCode(),
		Body:       res.Body(),
	}, nil
}
