package usecase

import (
	"context"
	"fmt"

	"github.com/user/cat-census/internal/repository"
	"github.com/user/cat-census/pkg/metrics"
	"github.com/user/cat-census/pkg/utils"
	"go.uber.org/zap"
)

// CrawlOptions describes where the listing lives and how it is paginated.
type CrawlOptions struct {
	ListingURL string
	PageParam  string
	// MaxPages caps the number of listing pages; 0 means no cap.
	MaxPages int
}

// ListingCrawler walks the paginated listing and collects profile URLs.
type ListingCrawler struct {
	fetcher repository.Fetcher
	parser  repository.ListingParser
	opts    CrawlOptions
	logger  *zap.Logger
}

// NewListingCrawler creates a new listing crawler.
func NewListingCrawler(fetcher repository.Fetcher, parser repository.ListingParser, opts CrawlOptions, logger *zap.Logger) *ListingCrawler {
	return &ListingCrawler{fetcher: fetcher, parser: parser, opts: opts, logger: logger}
}

// Crawl fetches listing pages 0, 1, 2, ... until one yields no profile links
// it has not seen before, and returns the deduplicated URLs in first-seen
// order. A pager that repeats its last page therefore still terminates. A
// failing listing page ends the crawl early with what was gathered so far.
// The only error returned is the context's.
func (c *ListingCrawler) Crawl(ctx context.Context) ([]string, error) {
	var found []string
	seen := make(map[string]struct{})

	for page := 0; c.opts.MaxPages == 0 || page < c.opts.MaxPages; page++ {
		if err := ctx.Err(); err != nil {
			return utils.Dedupe(found), err
		}

		links, err := c.crawlPage(ctx, page)
		if err != nil {
			if ctx.Err() != nil {
				return utils.Dedupe(found), ctx.Err()
			}
			metrics.ListingPagesTotal.WithLabelValues("failure").Inc()
			c.logger.Warn("Listing crawl stopped early", zap.Int("page", page), zap.Error(err))
			break
		}
		fresh := 0
		for _, link := range links {
			if _, ok := seen[link]; !ok {
				seen[link] = struct{}{}
				fresh++
			}
		}
		if fresh == 0 {
			metrics.ListingPagesTotal.WithLabelValues("empty").Inc()
			c.logger.Debug("Listing page has no new profile links", zap.Int("page", page), zap.Int("links", len(links)))
			break
		}

		metrics.ListingPagesTotal.WithLabelValues("success").Inc()
		c.logger.Debug("Listing page crawled", zap.Int("page", page), zap.Int("links", len(links)))
		found = append(found, links...)
	}

	return utils.Dedupe(found), nil
}

func (c *ListingCrawler) crawlPage(ctx context.Context, page int) ([]string, error) {
	pageURL, err := utils.WithPageParam(c.opts.ListingURL, c.opts.PageParam, page)
	if err != nil {
		return nil, fmt.Errorf("build listing url: %w", err)
	}

	p, err := c.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	if p.IsError() {
		return nil, fmt.Errorf("listing page %s returned status %d", pageURL, p.StatusCode)
	}
	// A successful but empty response is the end of the listing.
	if !p.HasBody() {
		return nil, nil
	}

	links, err := c.parser.ProfileLinks(p)
	if err != nil {
		return nil, fmt.Errorf("parse listing page %s: %w", pageURL, err)
	}
	return links, nil
}
