package resty_fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestFetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte("<h1>ok</h1>"))
		case "/forbidden":
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte("<h1>still a cat</h1>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewRestyFetcher(Options{UserAgent: "cat-census-test"}, zaptest.NewLogger(t))
	ctx := context.Background()

	page, err := f.Fetch(ctx, srv.URL+"/ok")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, page.StatusCode)
	assert.Equal(t, "<h1>ok</h1>", string(page.Body))
	assert.Equal(t, "cat-census-test", gotUA)

	page, err = f.Fetch(ctx, srv.URL+"/forbidden")
	require.NoError(t, err)
	assert.True(t, page.IsError())
	assert.Equal(t, "<h1>still a cat</h1>", string(page.Body))
}

func TestFetchTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	f := NewRestyFetcher(Options{Timeout: 2 * time.Second}, zaptest.NewLogger(t))
	page, err := f.Fetch(context.Background(), addr+"/gone")
	require.Error(t, err)
	assert.Nil(t, page)
}

func TestFetchRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("x"))
	}))
	defer srv.Close()

	f := NewRestyFetcher(Options{RequestsPerSecond: 0.5}, zaptest.NewLogger(t))
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err := f.Fetch(ctx, srv.URL)
	require.NoError(t, err)

	// The single token is spent; the next wait exceeds the deadline.
	_, err = f.Fetch(ctx, srv.URL)
	require.Error(t, err)
}
