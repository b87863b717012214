package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/cat-census/internal/entity"
)

func TestOldest(t *testing.T) {
	cats := []entity.CatRecord{
		{Name: "A", Years: 2, Months: 11, URL: "a"},
		{Name: "B", Years: 3, Months: 0, URL: "b"},
		{Name: "C", Years: 3, Months: 0, URL: "c"},
	}
	oldest, err := Oldest(cats)
	require.NoError(t, err)
	assert.Equal(t, "B", oldest.Name)

	oldest, err = Oldest(cats[:1])
	require.NoError(t, err)
	assert.Equal(t, "A", oldest.Name)
}

func TestOldestEmpty(t *testing.T) {
	_, err := Oldest(nil)
	require.ErrorIs(t, err, ErrNoCats)
}

// Comparing total months must agree with comparing years, then months.
func TestTotalMonthsMatchesLexicographicOrder(t *testing.T) {
	lexLess := func(a, b entity.CatRecord) bool {
		if a.Years != b.Years {
			return a.Years < b.Years
		}
		return a.Months < b.Months
	}

	var all []entity.CatRecord
	for y := 0; y <= 40; y++ {
		for m := 0; m <= 11; m++ {
			all = append(all, entity.CatRecord{Years: y, Months: m})
		}
	}
	for _, a := range all {
		for _, b := range all {
			if lexLess(a, b) != (a.TotalMonths() < b.TotalMonths()) {
				t.Fatalf("order mismatch for %dy%dm vs %dy%dm", a.Years, a.Months, b.Years, b.Months)
			}
		}
	}
}
