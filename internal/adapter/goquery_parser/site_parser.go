package goquery_parser

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/cat-census/internal/entity"
	"github.com/user/cat-census/pkg/utils"
)

// Selectors locate the profile fields in a shelter's markup.
type Selectors struct {
	Name string
	Age  string
	Sex  string
}

// SiteParser reads listing and profile pages of one shelter site.
type SiteParser struct {
	base      *url.URL
	linkRe    *regexp.Regexp
	selectors Selectors
}

// NewSiteParser creates a parser. Matched profile links are resolved
// against baseURL.
func NewSiteParser(baseURL, linkPattern string, selectors Selectors) (*SiteParser, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	linkRe, err := regexp.Compile(linkPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid profile link pattern: %w", err)
	}
	return &SiteParser{base: base, linkRe: linkRe, selectors: selectors}, nil
}

func (p *SiteParser) document(page *entity.Page) (*goquery.Document, error) {
	if !page.HasBody() {
		return nil, entity.ErrNoBody
	}
	return goquery.NewDocumentFromReader(bytes.NewReader(page.Body))
}

// ProfileLinks returns the absolute URL of every anchor that points at a
// profile page, in document order.
func (p *SiteParser) ProfileLinks(page *entity.Page) ([]string, error) {
	doc, err := p.document(page)
	if err != nil {
		return nil, err
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if !p.linkRe.MatchString(href) {
			return
		}
		abs, err := utils.ToAbsoluteURL(p.base, href)
		if err != nil {
			return
		}
		links = append(links, abs)
	})
	return links, nil
}

// ParseProfile returns the trimmed name, age and sex text of a profile.
// Missing fields come back empty; judging them is up to the caller.
func (p *SiteParser) ParseProfile(page *entity.Page) (entity.ProfileFields, error) {
	doc, err := p.document(page)
	if err != nil {
		return entity.ProfileFields{}, err
	}
	return entity.ProfileFields{
		Name: strings.TrimSpace(doc.Find(p.selectors.Name).First().Text()),
		Age:  strings.TrimSpace(doc.Find(p.selectors.Age).First().Text()),
		Sex:  strings.TrimSpace(doc.Find(p.selectors.Sex).First().Text()),
	}, nil
}
