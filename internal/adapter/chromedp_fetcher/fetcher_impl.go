package chromedp_fetcher

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/user/cat-census/internal/entity"
	"github.com/user/cat-census/pkg/metrics"
	"go.uber.org/zap"
)

type ChromedpFetcher struct {
	browserCtx    context.Context
	browserCancel context.CancelFunc
	allocCancel   context.CancelFunc
	timeout       time.Duration
	logger        *zap.Logger
}

// NewChromedpFetcher starts a headless browser shared by all fetches. Each
// fetch runs in its own tab. timeout of 0 means no per-page limit.
func NewChromedpFetcher(userAgent string, timeout time.Duration, logger *zap.Logger) (*ChromedpFetcher, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if userAgent != "" {
		opts = append(opts, chromedp.UserAgent(userAgent))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(logger.Sugar().Debugf))

	// Start the browser now so concurrent tabs share one process.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("start browser: %w", err)
	}

	return &ChromedpFetcher{
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		allocCancel:   allocCancel,
		timeout:       timeout,
		logger:        logger,
	}, nil
}

// Close shuts the browser down.
func (c *ChromedpFetcher) Close() {
	c.browserCancel()
	c.allocCancel()
}

// Fetch renders url in a new tab and returns its outer HTML together with
// the status of the main document response.
func (c *ChromedpFetcher) Fetch(ctx context.Context, url string) (*entity.Page, error) {
	tabCtx, cancel := chromedp.NewContext(c.browserCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if c.timeout > 0 {
		var timeoutCancel context.CancelFunc
		tabCtx, timeoutCancel = context.WithTimeout(tabCtx, c.timeout)
		defer timeoutCancel()
	}

	var status atomic.Int64
	chromedp.ListenTarget(tabCtx, func(ev interface{}) {
		if e, ok := ev.(*network.EventResponseReceived); ok && e.Type == network.ResourceTypeDocument {
			status.CompareAndSwap(0, e.Response.Status)
		}
	})

	var html string
	start := time.Now()
	err := chromedp.Run(tabCtx,
		network.Enable(),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	metrics.FetchDuration.WithLabelValues("chrome").Observe(time.Since(start).Seconds())
	if err != nil {
		c.logger.Debug("browser fetch failed", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("render %s: %w", url, err)
	}

	return &entity.Page{
		URL:        url,
		StatusCode: int(status.Load()),
		Body:       []byte(html),
	}, nil
}
