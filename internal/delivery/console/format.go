package console

import (
	"fmt"
	"strings"

	"github.com/user/cat-census/internal/entity"
)

// AgeString renders an age as "3 years 4 months". Months are left out when zero.
func AgeString(years, months int) string {
	parts := []string{plural(years, "year")}
	if months > 0 {
		parts = append(parts, plural(months, "month"))
	}
	return strings.Join(parts, " ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func Pronoun(isFemale bool) string {
	if isFemale {
		return "She"
	}
	return "He"
}

func AccessingLine() string {
	return "Accessing San Francisco SPCA (Cat Department)..."
}

func AccessedLine(found int) string {
	return fmt.Sprintf("Cat information system accessed. %d cats found. Beginning age-guessing process...", found)
}

func GuessingLine(t Theme, cat entity.CatRecord) string {
	return fmt.Sprintf("Guessing %s's age: %s", t.Name.Render(cat.Name), AgeString(cat.Years, cat.Months))
}

// SummaryLine announces the oldest cat.
func SummaryLine(t Theme, cat entity.CatRecord) string {
	return t.Summary.Render("The oldest cat is ") +
		t.Oldest.Render(cat.Name) +
		t.Summary.Render(fmt.Sprintf(". %s is %s old.", Pronoun(cat.IsFemale), AgeString(cat.Years, cat.Months)))
}

func OpeningLine() string {
	return "Opening cat profile..."
}

func ErrorLine(t Theme, err error) string {
	return t.Error.Render(fmt.Sprintf("Error: %v", err))
}
