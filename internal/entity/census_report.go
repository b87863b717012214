package entity

import "time"

// DroppedProfile mirrors the `census_dropped_profiles` table.
type DroppedProfile struct {
	URL        string `json:"url"`
	Reason     string `json:"reason"`
	StatusCode int    `json:"status_code,omitempty"`
}

// CensusReport is the outcome of one pipeline run and mirrors the
// `census_runs` table.
type CensusReport struct {
	ID          string           `json:"id"`
	StartedAt   time.Time        `json:"started_at"`
	FinishedAt  time.Time        `json:"finished_at"`
	ProfileURLs []string         `json:"profile_urls"`
	Cats        []CatRecord      `json:"cats"`
	Dropped     []DroppedProfile `json:"dropped"`
	Oldest      *CatRecord       `json:"oldest,omitempty"`
}
