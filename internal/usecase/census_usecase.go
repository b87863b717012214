package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/user/cat-census/internal/entity"
	"github.com/user/cat-census/internal/repository"
	"github.com/user/cat-census/pkg/metrics"
	"go.uber.org/zap"
)

var ErrReportsDisabled = errors.New("report storage is not configured")

// RunHooks lets a caller observe pipeline progress. Nil hooks are skipped.
type RunHooks struct {
	OnCrawled   func(profileURLs []string)
	OnExtracted func(cats []entity.CatRecord)
}

// Census defines the interface for running the cat census.
type Census interface {
	Run(ctx context.Context, hooks RunHooks) (*entity.CensusReport, error)
	Latest(ctx context.Context) (*entity.CensusReport, error)
}

type censusUseCase struct {
	crawler   *ListingCrawler
	extractor *ProfileExtractor
	reports   repository.ReportRepository
	logger    *zap.Logger
}

// NewCensus creates the census pipeline. reports may be nil.
func NewCensus(crawler *ListingCrawler, extractor *ProfileExtractor, reports repository.ReportRepository, logger *zap.Logger) Census {
	return &censusUseCase{
		crawler:   crawler,
		extractor: extractor,
		reports:   reports,
		logger:    logger,
	}
}

// Run crawls the listing, extracts every profile and picks the oldest cat.
// When no cat parses the report is returned together with ErrNoCats.
func (uc *censusUseCase) Run(ctx context.Context, hooks RunHooks) (*entity.CensusReport, error) {
	report := &entity.CensusReport{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
	log := uc.logger.With(zap.String("run_id", report.ID))

	urls, err := uc.crawler.Crawl(ctx)
	if err != nil {
		metrics.CensusRunsTotal.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("crawl listing: %w", err)
	}
	report.ProfileURLs = urls
	log.Info("Listing crawled", zap.Int("profiles", len(urls)))
	if hooks.OnCrawled != nil {
		hooks.OnCrawled(urls)
	}

	report.Cats, report.Dropped = uc.extractor.ExtractAll(ctx, urls)
	if err := ctx.Err(); err != nil {
		metrics.CensusRunsTotal.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("extract profiles: %w", err)
	}
	log.Info("Profiles extracted", zap.Int("cats", len(report.Cats)), zap.Int("dropped", len(report.Dropped)))
	if hooks.OnExtracted != nil {
		hooks.OnExtracted(report.Cats)
	}

	oldest, oldestErr := Oldest(report.Cats)
	if oldestErr == nil {
		for i := range report.Cats {
			if report.Cats[i] == oldest {
				report.Oldest = &report.Cats[i]
				break
			}
		}
	}
	report.FinishedAt = time.Now().UTC()

	uc.save(ctx, report)

	if oldestErr != nil {
		metrics.CensusRunsTotal.WithLabelValues("no_cats").Inc()
		return report, oldestErr
	}
	metrics.CensusRunsTotal.WithLabelValues("success").Inc()
	log.Info("Oldest cat found", zap.String("name", oldest.Name), zap.String("url", oldest.URL))
	return report, nil
}

// save stores the report when a repository is configured. A failure is
// logged and does not affect the run's outcome.
func (uc *censusUseCase) save(ctx context.Context, report *entity.CensusReport) {
	if uc.reports == nil {
		return
	}
	if err := uc.reports.Save(ctx, report); err != nil {
		uc.logger.Warn("Failed to store census report", zap.String("run_id", report.ID), zap.Error(err))
	}
}

func (uc *censusUseCase) Latest(ctx context.Context) (*entity.CensusReport, error) {
	if uc.reports == nil {
		return nil, ErrReportsDisabled
	}
	return uc.reports.FindLatest(ctx)
}
