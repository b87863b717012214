package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/cat-census/internal/entity"
	"github.com/user/cat-census/internal/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS census_runs (
	id            UUID PRIMARY KEY,
	started_at    TIMESTAMPTZ NOT NULL,
	finished_at   TIMESTAMPTZ NOT NULL,
	profile_urls  TEXT[] NOT NULL,
	oldest_index  INT
);
CREATE TABLE IF NOT EXISTS census_cats (
	run_id     UUID NOT NULL REFERENCES census_runs (id) ON DELETE CASCADE,
	position   INT NOT NULL,
	name       TEXT NOT NULL,
	years      INT NOT NULL,
	months     INT NOT NULL,
	is_female  BOOLEAN NOT NULL,
	url        TEXT NOT NULL,
	PRIMARY KEY (run_id, position)
);
CREATE TABLE IF NOT EXISTS census_dropped_profiles (
	run_id       UUID NOT NULL REFERENCES census_runs (id) ON DELETE CASCADE,
	position     INT NOT NULL,
	url          TEXT NOT NULL,
	reason       TEXT NOT NULL,
	status_code  INT NOT NULL DEFAULT 0,
	PRIMARY KEY (run_id, position)
);
CREATE INDEX IF NOT EXISTS census_runs_finished_at_idx ON census_runs (finished_at DESC);
`

// ReportRepoImpl provides a concrete implementation for the ReportRepository interface using PostgreSQL.
type ReportRepoImpl struct {
	db *pgxpool.Pool
}

// NewReportRepo creates a new instance of ReportRepoImpl.
func NewReportRepo(db *pgxpool.Pool) *ReportRepoImpl {
	return &ReportRepoImpl{db: db}
}

// EnsureSchema creates the census tables if they do not exist yet.
func (r *ReportRepoImpl) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create census schema: %w", err)
	}
	return nil
}

func (r *ReportRepoImpl) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// Save stores the run, its cats and its dropped profiles within a single transaction.
func (r *ReportRepoImpl) Save(ctx context.Context, report *entity.CensusReport) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO census_runs (id, started_at, finished_at, profile_urls, oldest_index)
		 VALUES ($1, $2, $3, $4, $5)`,
		report.ID, report.StartedAt, report.FinishedAt, report.ProfileURLs, oldestIndex(report),
	)
	if err != nil {
		return err
	}

	if len(report.Cats) > 0 || len(report.Dropped) > 0 {
		batch := &pgx.Batch{}
		for i, cat := range report.Cats {
			batch.Queue(`INSERT INTO census_cats (run_id, position, name, years, months, is_female, url)
			             VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				report.ID, i, cat.Name, cat.Years, cat.Months, cat.IsFemale, cat.URL)
		}
		for i, d := range report.Dropped {
			batch.Queue(`INSERT INTO census_dropped_profiles (run_id, position, url, reason, status_code)
			             VALUES ($1, $2, $3, $4, $5)`,
				report.ID, i, d.URL, d.Reason, d.StatusCode)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// FindLatest retrieves the report with the most recent finished_at.
func (r *ReportRepoImpl) FindLatest(ctx context.Context) (*entity.CensusReport, error) {
	var report entity.CensusReport
	var oldest *int32
	err := r.db.QueryRow(ctx,
		`SELECT id::text, started_at, finished_at, profile_urls, oldest_index
		 FROM census_runs ORDER BY finished_at DESC LIMIT 1`,
	).Scan(&report.ID, &report.StartedAt, &report.FinishedAt, &report.ProfileURLs, &oldest)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT name, years, months, is_female, url FROM census_cats
		 WHERE run_id = $1 ORDER BY position`, report.ID)
	if err != nil {
		return nil, err
	}
	report.Cats, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.CatRecord, error) {
		var c entity.CatRecord
		err := row.Scan(&c.Name, &c.Years, &c.Months, &c.IsFemale, &c.URL)
		return c, err
	})
	if err != nil {
		return nil, err
	}

	rows, err = r.db.Query(ctx,
		`SELECT url, reason, status_code FROM census_dropped_profiles
		 WHERE run_id = $1 ORDER BY position`, report.ID)
	if err != nil {
		return nil, err
	}
	report.Dropped, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.DroppedProfile, error) {
		var d entity.DroppedProfile
		err := row.Scan(&d.URL, &d.Reason, &d.StatusCode)
		return d, err
	})
	if err != nil {
		return nil, err
	}

	if oldest != nil && int(*oldest) < len(report.Cats) {
		report.Oldest = &report.Cats[*oldest]
	}
	return &report, nil
}

// oldestIndex locates report.Oldest within report.Cats, or nil.
func oldestIndex(report *entity.CensusReport) *int {
	if report.Oldest == nil {
		return nil
	}
	for i := range report.Cats {
		if report.Cats[i] == *report.Oldest {
			return &i
		}
	}
	return nil
}
