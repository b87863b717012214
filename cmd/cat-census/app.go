package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/user/cat-census/internal/adapter/browser"
	"github.com/user/cat-census/internal/adapter/cache"
	"github.com/user/cat-census/internal/adapter/chromedp_fetcher"
	"github.com/user/cat-census/internal/adapter/goquery_parser"
	"github.com/user/cat-census/internal/adapter/postgres"
	redis_adapter "github.com/user/cat-census/internal/adapter/redis"
	"github.com/user/cat-census/internal/adapter/resty_fetcher"
	"github.com/user/cat-census/internal/delivery/http/handler"
	"github.com/user/cat-census/internal/repository"
	"github.com/user/cat-census/internal/usecase"
	"github.com/user/cat-census/pkg/config"
	"go.uber.org/zap"
)

// app holds the wired pipeline and whatever must be released after it.
type app struct {
	census  usecase.Census
	opener  repository.BrowserOpener
	pingers map[string]handler.Pinger
	closers []func()
}

func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	a := &app{
		opener:  browser.NewOpener(io.Discard),
		pingers: map[string]handler.Pinger{},
	}

	// --- Fetcher ---
	var fetcher repository.Fetcher
	switch cfg.FetchMode {
	case config.FetchModeChrome:
		cf, err := chromedp_fetcher.NewChromedpFetcher(cfg.UserAgent, cfg.RequestTimeout(), logger)
		if err != nil {
			return nil, fmt.Errorf("start headless chrome: %w", err)
		}
		a.closers = append(a.closers, cf.Close)
		fetcher = cf
	default:
		fetcher = resty_fetcher.NewRestyFetcher(resty_fetcher.Options{
			UserAgent:         cfg.UserAgent,
			Timeout:           cfg.RequestTimeout(),
			RequestsPerSecond: cfg.RequestsPerSecond,
		}, logger)
	}
	logger.Debug("Fetcher initialized", zap.String("mode", cfg.FetchMode))

	// --- Redis page cache ---
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		a.closers = append(a.closers, func() { rdb.Close() })
		pageCache := redis_adapter.NewPageCacheRepo(rdb)
		if err := pageCache.Ping(ctx); err != nil {
			logger.Warn("Redis unreachable, pages will not be cached", zap.Error(err))
		} else {
			fetcher = cache.NewCachingFetcher(fetcher, pageCache, cfg.CacheTTL(), logger)
			logger.Info("Redis page cache enabled", zap.String("addr", cfg.RedisAddr))
		}
		a.pingers["redis"] = pageCache
	}

	// --- PostgreSQL report store ---
	var reports repository.ReportRepository
	if cfg.PostgresURL != "" {
		dbpool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("unable to connect to database: %w", err)
		}
		a.closers = append(a.closers, dbpool.Close)
		repo := postgres.NewReportRepo(dbpool)
		if err := repo.EnsureSchema(ctx); err != nil {
			a.Close()
			return nil, err
		}
		reports = repo
		a.pingers["postgres"] = repo
		logger.Info("PostgreSQL report store enabled")
	}

	// --- Parser ---
	parser, err := goquery_parser.NewSiteParser(cfg.BaseURL, cfg.ProfileLinkPattern, goquery_parser.Selectors{
		Name: cfg.NameSelector,
		Age:  cfg.AgeSelector,
		Sex:  cfg.SexSelector,
	})
	if err != nil {
		a.Close()
		return nil, err
	}

	// --- Use cases ---
	crawler := usecase.NewListingCrawler(fetcher, parser, usecase.CrawlOptions{
		ListingURL: cfg.ListingURL(),
		PageParam:  cfg.PageParam,
		MaxPages:   cfg.MaxPages,
	}, logger)
	extractor := usecase.NewProfileExtractor(fetcher, parser, logger)
	a.census = usecase.NewCensus(crawler, extractor, reports, logger)

	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
