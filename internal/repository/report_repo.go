package repository

import (
	"context"
	"errors"

	"github.com/user/cat-census/internal/entity"
)

var ErrReportNotFound = errors.New("census report not found")

// ReportRepository defines the interface for storing census reports.
type ReportRepository interface {
	// Save stores a report together with its cats and dropped profiles.
	Save(ctx context.Context, report *entity.CensusReport) error
	// FindLatest returns the most recently finished report.
	FindLatest(ctx context.Context) (*entity.CensusReport, error)
	Ping(ctx context.Context) error
}
