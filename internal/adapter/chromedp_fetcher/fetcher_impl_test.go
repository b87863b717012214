package chromedp_fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestFetch(t *testing.T) {
	if os.Getenv("CHROMEDP_TEST") == "" {
		t.Skip("set CHROMEDP_TEST=1 to run tests that need a local Chrome")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		if r.URL.Path == "/forbidden" {
			w.WriteHeader(http.StatusForbidden)
		}
		w.Write([]byte(`<html><body><h1>Mittens</h1></body></html>`))
	}))
	defer srv.Close()

	f, err := NewChromedpFetcher("", 20*time.Second, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer f.Close()

	page, err := f.Fetch(context.Background(), srv.URL+"/cat")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, page.StatusCode)
	assert.True(t, strings.Contains(string(page.Body), "<h1>Mittens</h1>"))

	page, err = f.Fetch(context.Background(), srv.URL+"/forbidden")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, page.StatusCode)
	assert.True(t, page.HasBody())
}
