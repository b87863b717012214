package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/user/cat-census/internal/entity"
	"github.com/user/cat-census/internal/repository"
)

var errConnRefused = errors.New("dial tcp: connection refused")

// fakeFetcher serves canned pages. URLs without a page fail with errConnRefused.
type fakeFetcher struct {
	mu     sync.Mutex
	pages  map[string]*entity.Page
	called []string
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{pages: map[string]*entity.Page{}}
}

func (f *fakeFetcher) add(url string, status int, body string) {
	f.pages[url] = &entity.Page{URL: url, StatusCode: status, Body: []byte(body)}
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (*entity.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.called = append(f.called, url)
	p, ok := f.pages[url]
	if !ok {
		return nil, errConnRefused
	}
	return p, nil
}

// lineParser treats every body line as a link or as "name|age|sex".
type lineParser struct{}

func (lineParser) ProfileLinks(page *entity.Page) ([]string, error) {
	if !page.HasBody() {
		return nil, entity.ErrNoBody
	}
	var links []string
	for _, line := range strings.Split(string(page.Body), "\n") {
		if line = strings.TrimSpace(line); line != "" && line != "-" {
			links = append(links, line)
		}
	}
	return links, nil
}

func (lineParser) ParseProfile(page *entity.Page) (entity.ProfileFields, error) {
	if !page.HasBody() {
		return entity.ProfileFields{}, entity.ErrNoBody
	}
	parts := strings.SplitN(string(page.Body), "|", 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	return entity.ProfileFields{Name: parts[0], Age: parts[1], Sex: parts[2]}, nil
}

type memoryReports struct {
	mu      sync.Mutex
	saved   []*entity.CensusReport
	saveErr error
}

func (m *memoryReports) Save(_ context.Context, r *entity.CensusReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, r)
	return nil
}

func (m *memoryReports) FindLatest(context.Context) (*entity.CensusReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.saved) == 0 {
		return nil, repository.ErrReportNotFound
	}
	return m.saved[len(m.saved)-1], nil
}

func (m *memoryReports) Ping(context.Context) error { return nil }

// blockingFetcher waits until every expected caller has arrived before
// answering, so it only returns if all fetches run concurrently.
type blockingFetcher struct {
	wg sync.WaitGroup
}

func newBlockingFetcher(n int) *blockingFetcher {
	b := &blockingFetcher{}
	b.wg.Add(n)
	return b
}

func (b *blockingFetcher) Fetch(ctx context.Context, url string) (*entity.Page, error) {
	b.wg.Done()
	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(5 * time.Second):
		return nil, errors.New("fetches did not run concurrently")
	}
	return &entity.Page{URL: url, StatusCode: 200, Body: []byte("Cat " + url + "|1 year, 2 months|Male")}, nil
}
