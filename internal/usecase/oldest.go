package usecase

import (
	"errors"

	"github.com/user/cat-census/internal/entity"
)

var ErrNoCats = errors.New("no cat profile could be parsed")

// Oldest returns the record with the greatest total age in months. The
// first of several equal maxima wins.
func Oldest(cats []entity.CatRecord) (entity.CatRecord, error) {
	if len(cats) == 0 {
		return entity.CatRecord{}, ErrNoCats
	}
	oldest := cats[0]
	for _, c := range cats[1:] {
		if c.TotalMonths() > oldest.TotalMonths() {
			oldest = c
		}
	}
	return oldest, nil
}
