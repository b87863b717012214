package entity

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrNoBody        = errors.New("page has no body")
	ErrMissingName   = errors.New("profile has no name")
	ErrUnparsableAge = errors.New("profile age is not parsable")
)

// CatRecord is one successfully parsed cat profile.
type CatRecord struct {
	Name     string `json:"name"`
	Years    int    `json:"years"`
	Months   int    `json:"months"`
	IsFemale bool   `json:"is_female"`
	URL      string `json:"url"`
}

// TotalMonths is the single sortable age key.
func (c CatRecord) TotalMonths() int {
	return c.Years*12 + c.Months
}

// ProfileFields holds the raw text a parser pulled out of a profile page.
type ProfileFields struct {
	Name string
	Age  string
	Sex  string
}

// ageNumberRe matches unsigned runs of digits; a leading "-" is treated as
// separator text, so "-1 years, 2 months" reads as 1 year 2 months.
var ageNumberRe = regexp.MustCompile(`\d+`)

// ParseAge reads text such as "3 years, 4 months". Exactly two integers
// must be present and the second one must be a valid month count.
func ParseAge(text string) (years, months int, err error) {
	nums := ageNumberRe.FindAllString(text, -1)
	if len(nums) != 2 {
		return 0, 0, ErrUnparsableAge
	}
	years, err = strconv.Atoi(nums[0])
	if err != nil {
		return 0, 0, ErrUnparsableAge
	}
	months, err = strconv.Atoi(nums[1])
	if err != nil || months > 11 {
		return 0, 0, ErrUnparsableAge
	}
	return years, months, nil
}

// IsFemale reports whether the sex field reads exactly "Female".
func IsFemale(sex string) bool {
	return strings.TrimSpace(sex) == "Female"
}

// NewCatRecord builds a record from raw profile fields. It never returns a
// partially filled record.
func NewCatRecord(url string, f ProfileFields) (*CatRecord, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return nil, ErrMissingName
	}
	years, months, err := ParseAge(strings.TrimSpace(f.Age))
	if err != nil {
		return nil, err
	}
	return &CatRecord{
		Name:     name,
		Years:    years,
		Months:   months,
		IsFemale: IsFemale(f.Sex),
		URL:      url,
	}, nil
}
