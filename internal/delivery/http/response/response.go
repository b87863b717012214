package response

import (
	"time"

	"github.com/user/cat-census/internal/entity"
)

// CensusResponse is the API view of an entity.CensusReport.
type CensusResponse struct {
	ID          string                  `json:"id"`
	StartedAt   time.Time               `json:"started_at"`
	FinishedAt  time.Time               `json:"finished_at"`
	ProfileURLs int                     `json:"profiles_found"`
	Oldest      *entity.CatRecord       `json:"oldest,omitempty"`
	Cats        []entity.CatRecord      `json:"cats"`
	Dropped     []entity.DroppedProfile `json:"dropped"`
	Error       string                  `json:"error,omitempty"`
}

func NewCensusResponse(r *entity.CensusReport, errMsg string) CensusResponse {
	cats := r.Cats
	if cats == nil {
		cats = []entity.CatRecord{}
	}
	dropped := r.Dropped
	if dropped == nil {
		dropped = []entity.DroppedProfile{}
	}
	return CensusResponse{
		ID:          r.ID,
		StartedAt:   r.StartedAt,
		FinishedAt:  r.FinishedAt,
		ProfileURLs: len(r.ProfileURLs),
		Oldest:      r.Oldest,
		Cats:        cats,
		Dropped:     dropped,
		Error:       errMsg,
	}
}
