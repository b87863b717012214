package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/cat-census/internal/usecase"
)

const profileHTML = `<div class="field-name-title"><h1>%s</h1></div>
<div class="field-name-field-animal-age"><div class="field-item">%s</div></div>
<div class="field-name-field-gender"><div class="field-item">%s</div></div>`

func newShelter(t *testing.T, profiles map[string][3]string) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/adoptions/cats", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "" {
			return
		}
		for id := range profiles {
			fmt.Fprintf(w, `<a href="/adoptions/pet-details/%s">cat</a>`, id)
		}
	})
	mux.HandleFunc("/adoptions/pet-details/", func(w http.ResponseWriter, r *http.Request) {
		p, ok := profiles[strings.TrimPrefix(r.URL.Path, "/adoptions/pet-details/")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, profileHTML, p[0], p[1], p[2])
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRunCommand(t *testing.T) {
	srv := newShelter(t, map[string][3]string{
		"1": {"Luna", "12 years, 4 months", "Female"},
		"2": {"Tom", "adult", "Male"},
	})

	out, err := execute(t, "run", "--base-url", srv.URL, "--open=false", "--list")
	require.NoError(t, err)

	assert.Contains(t, out, "Accessing San Francisco SPCA (Cat Department)...")
	assert.Contains(t, out, "Cat information system accessed. 2 cats found. Beginning age-guessing process...")
	assert.Contains(t, out, "Guessing Luna's age: 12 years 4 months")
	assert.NotContains(t, out, "Guessing Tom")
	assert.Contains(t, out, "The oldest cat is Luna. She is 12 years 4 months old.")
	assert.NotContains(t, out, "Opening cat profile...")
}

func TestRunCommandNoCats(t *testing.T) {
	srv := newShelter(t, map[string][3]string{
		"1": {"", "12 years, 4 months", "Female"},
	})

	_, err := execute(t, "--base-url", srv.URL, "--open=false")
	require.ErrorIs(t, err, usecase.ErrNoCats)
}

func TestRunCommandRejectsBadFetchMode(t *testing.T) {
	_, err := execute(t, "--fetch-mode", "carrier-pigeon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FETCH_MODE")
}
