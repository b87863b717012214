package repository

import (
	"context"

	"github.com/user/cat-census/internal/entity"
)

// Fetcher defines the contract for retrieving a page over the network.
type Fetcher interface {
	// Fetch returns the page at url. Error statuses are returned as pages;
	// an error means no body was received at all.
	Fetch(ctx context.Context, url string) (*entity.Page, error)
}
