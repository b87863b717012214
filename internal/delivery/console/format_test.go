package console

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/user/cat-census/internal/entity"
)

func TestAgeString(t *testing.T) {
	tests := []struct {
		years, months int
		want          string
	}{
		{years: 1, months: 0, want: "1 year"},
		{years: 2, months: 0, want: "2 years"},
		{years: 0, months: 5, want: "0 years 5 months"},
		{years: 3, months: 1, want: "3 years 1 month"},
		{years: 12, months: 11, want: "12 years 11 months"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AgeString(tt.years, tt.months))
	}
}

func TestLines(t *testing.T) {
	theme := PlainTheme(&bytes.Buffer{})
	luna := entity.CatRecord{Name: "Luna", Years: 12, Months: 4, IsFemale: true}
	tom := entity.CatRecord{Name: "Tom", Years: 1}

	assert.Equal(t, "Cat information system accessed. 7 cats found. Beginning age-guessing process...", AccessedLine(7))
	assert.Equal(t, "Guessing Luna's age: 12 years 4 months", GuessingLine(theme, luna))
	assert.Equal(t, "The oldest cat is Luna. She is 12 years 4 months old.", SummaryLine(theme, luna))
	assert.Equal(t, "The oldest cat is Tom. He is 1 year old.", SummaryLine(theme, tom))
	assert.Equal(t, "Error: no cat profile could be parsed", ErrorLine(theme, errors.New("no cat profile could be parsed")))
}

func TestRenderCatsOldestFirst(t *testing.T) {
	var buf bytes.Buffer
	RenderCats(&buf, []entity.CatRecord{
		{Name: "Tom", Years: 3, URL: "https://example.org/1"},
		{Name: "Luna", Years: 12, Months: 4, IsFemale: true, URL: "https://example.org/2"},
	})

	out := buf.String()
	assert.Less(t, strings.Index(out, "Luna"), strings.Index(out, "Tom"))
	assert.Contains(t, out, "12 years 4 months")
	assert.Contains(t, out, "Female")
}
