package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/user/cat-census/internal/entity"
	"github.com/user/cat-census/internal/repository"
	"github.com/user/cat-census/pkg/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Drop reasons recorded on entity.DroppedProfile.
const (
	ReasonNoBody        = "no body"
	ReasonMissingName   = "missing name"
	ReasonUnparsableAge = "unparsable age"
	ReasonParseError    = "parse error"
)

// ProfileExtractor turns profile pages into cat records.
type ProfileExtractor struct {
	fetcher repository.Fetcher
	parser  repository.ProfileParser
	logger  *zap.Logger
}

// NewProfileExtractor creates a new profile extractor.
func NewProfileExtractor(fetcher repository.Fetcher, parser repository.ProfileParser, logger *zap.Logger) *ProfileExtractor {
	return &ProfileExtractor{fetcher: fetcher, parser: parser, logger: logger}
}

// Extract fetches and parses one profile. Pages with an error status are
// still parsed when they carry a body.
func (e *ProfileExtractor) Extract(ctx context.Context, url string) (*entity.CatRecord, error) {
	cat, _, err := e.extract(ctx, url)
	return cat, err
}

func (e *ProfileExtractor) extract(ctx context.Context, url string) (*entity.CatRecord, int, error) {
	page, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", entity.ErrNoBody, err)
	}
	if !page.HasBody() {
		return nil, page.StatusCode, entity.ErrNoBody
	}

	fields, err := e.parser.ParseProfile(page)
	if err != nil {
		return nil, page.StatusCode, fmt.Errorf("parse profile %s: %w", url, err)
	}
	cat, err := entity.NewCatRecord(url, fields)
	if err != nil {
		return nil, page.StatusCode, err
	}
	return cat, page.StatusCode, nil
}

// ExtractAll runs Extract for every URL concurrently and waits for all of
// them. Cats and drops keep the order of urls.
func (e *ProfileExtractor) ExtractAll(ctx context.Context, urls []string) ([]entity.CatRecord, []entity.DroppedProfile) {
	type slot struct {
		cat  *entity.CatRecord
		drop *entity.DroppedProfile
	}
	slots := make([]slot, len(urls))

	var g errgroup.Group
	for i, url := range urls {
		g.Go(func() error {
			cat, status, err := e.extract(ctx, url)
			if err != nil {
				reason := DropReason(err)
				metrics.ProfilesTotal.WithLabelValues("dropped", reason).Inc()
				e.logger.Debug("Profile dropped", zap.String("url", url), zap.String("reason", reason), zap.Error(err))
				slots[i].drop = &entity.DroppedProfile{URL: url, Reason: reason, StatusCode: status}
				return nil
			}
			metrics.ProfilesTotal.WithLabelValues("parsed", "").Inc()
			slots[i].cat = cat
			return nil
		})
	}
	_ = g.Wait()

	cats := make([]entity.CatRecord, 0, len(urls))
	var dropped []entity.DroppedProfile
	for _, s := range slots {
		switch {
		case s.cat != nil:
			cats = append(cats, *s.cat)
		case s.drop != nil:
			dropped = append(dropped, *s.drop)
		}
	}
	return cats, dropped
}

// DropReason maps an extraction error onto a short reason.
func DropReason(err error) string {
	switch {
	case errors.Is(err, entity.ErrNoBody):
		return ReasonNoBody
	case errors.Is(err, entity.ErrMissingName):
		return ReasonMissingName
	case errors.Is(err, entity.ErrUnparsableAge):
		return ReasonUnparsableAge
	default:
		return ReasonParseError
	}
}
