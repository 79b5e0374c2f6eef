package source_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildledger/estimate-api/internal/source"
)

func TestHTTPClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"data":{"sections":[]}}`))
	}))
	defer srv.Close()

	c := source.HTTPClient{URL: srv.URL, Timeout: time.Second}
	body, err := c.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `{"data":{"sections":[]}}`, string(body))
}

func TestHTTPClientNon2xxIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := source.HTTPClient{URL: srv.URL}
	_, err := c.Fetch(context.Background())
	assert.ErrorIs(t, err, source.ErrFetch)
}

func TestHTTPClientConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := source.HTTPClient{URL: srv.URL, Timeout: time.Second}
	_, err := c.Fetch(context.Background())
	assert.ErrorIs(t, err, source.ErrFetch)
}

func TestFileClientFetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "estimate.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"data":{"sections":[]}}`), 0o600))

	c := source.FileClient{Path: path}
	body, err := c.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `{"data":{"sections":[]}}`, string(body))
}

func TestFileClientMissingFile(t *testing.T) {
	c := source.FileClient{Path: filepath.Join(t.TempDir(), "missing.json")}
	_, err := c.Fetch(context.Background())
	assert.ErrorIs(t, err, source.ErrFetch)
}
