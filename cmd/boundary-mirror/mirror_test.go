package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cartographs/internal/census"
)

func writeArchive(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestMirror_ServesIndexedArchives(t *testing.T) {
	root := t.TempDir()
	writeArchive(t, root, "cb_2023_us_state_500k.zip", "states")
	writeArchive(t, filepath.Join(root, "2022"), "cb_2022_us_county_5m.zip", "counties")
	writeArchive(t, root, "README.txt", "ignored")

	var logs bytes.Buffer
	m, err := newMirror(root, zerolog.New(&logs))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/GENZ2022/shp/cb_2022_us_county_5m.zip",
		"/GENZ2023/shp/cb_2023_us_state_500k.zip",
	}, m.paths())

	srv := httptest.NewServer(m.handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/GENZ2022/shp/cb_2022_us_county_5m.zip")
	require.NoError(t, err)
	var body bytes.Buffer
	_, _ = body.ReadFrom(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "counties", body.String())

	resp, err = http.Get(srv.URL + "/GENZ2021/shp/cb_2021_us_state_500k.zip")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/GENZ2023/shp/cb_2023_us_state_500k.zip", "application/zip", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/index")
	require.NoError(t, err)
	var index []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&index))
	resp.Body.Close()
	assert.Len(t, index, 2)

	assert.Contains(t, logs.String(), `"status":404`)
	assert.Contains(t, logs.String(), `"path":"/GENZ2022/shp/cb_2022_us_county_5m.zip"`)
}

func TestMirror_DuplicateArchive(t *testing.T) {
	root := t.TempDir()
	writeArchive(t, filepath.Join(root, "a"), "cb_2023_us_state_500k.zip", "1")
	writeArchive(t, filepath.Join(root, "b"), "cb_2023_us_state_500k.zip", "2")

	_, err := newMirror(root, zerolog.Nop())
	assert.Error(t, err)
}

func TestMirror_WithCensusClient(t *testing.T) {
	root := t.TempDir()
	writeArchive(t, root, "cb_2023_us_state_20m.zip", "payload")
	m, err := newMirror(root, zerolog.Nop())
	require.NoError(t, err)
	srv := httptest.NewServer(m.handler())
	defer srv.Close()

	c := census.New(census.Config{BaseURL: srv.URL, RateLimit: 100}, zerolog.Nop())
	a, err := c.Fetch(context.Background(), 2023, "cb_2023_us_state_20m.zip", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, int64(len("payload")), a.Size)
}
