package repository

import "github.com/user/cat-census/internal/entity"

// ListingParser pulls absolute profile URLs out of a listing page.
type ListingParser interface {
	ProfileLinks(page *entity.Page) ([]string, error)
}

// ProfileParser pulls the raw name, age and sex text out of a profile page.
type ProfileParser interface {
	ParseProfile(page *entity.Page) (entity.ProfileFields, error)
}
