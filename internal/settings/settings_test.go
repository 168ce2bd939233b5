package settings_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cartographs/internal/settings"
)

func env(m map[string]string) settings.LookupFunc {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cartographs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	s, err := settings.Load("", env(nil))
	require.NoError(t, err)
	assert.Equal(t, settings.Defaults(), s)
	assert.Equal(t, "EPSG:4326", s.CRS)
	assert.Equal(t, 2023, s.Latest)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeConfig(t, `
crs: EPSG:3857
latest: 2020
resolution: 5m
timeout: 30s
checksums:
  cb_2020_us_state_5m.zip: ABCDEF
`)
	s, err := settings.Load(path, env(map[string]string{
		settings.EnvYear:    "2021",
		settings.EnvBaseURL: "",
	}))
	require.NoError(t, err)

	assert.Equal(t, "EPSG:3857", s.CRS, "file overrides default")
	assert.Equal(t, 2021, s.Latest, "env overrides file")
	assert.Equal(t, "5m", s.Resolution)
	assert.Equal(t, 30*time.Second, s.Timeout)
	assert.Equal(t, settings.Defaults().BaseURL, s.BaseURL, "empty env var is ignored")
	assert.Equal(t, "ABCDEF", s.Checksums["cb_2020_us_state_5m.zip"])
}

func TestLoad_EmptyFile(t *testing.T) {
	s, err := settings.Load(writeConfig(t, ""), env(nil))
	require.NoError(t, err)
	assert.Equal(t, settings.Defaults(), s)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
	}{
		{name: "unknown key", file: "projection: EPSG:4326\n"},
		{name: "two documents", file: "latest: 2020\n---\nlatest: 2021\n"},
		{name: "unknown crs", file: "crs: EPSG:2163\n"},
		{name: "old year", file: "latest: 2010\n"},
		{name: "bad resolution", file: "resolution: 1m\n"},
		{name: "bad base url", file: "base_url: ftp://example.com\n"},
		{name: "bad env year", env: map[string]string{settings.EnvYear: "twenty"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := ""
			if tt.file != "" {
				path = writeConfig(t, tt.file)
			}
			_, err := settings.Load(path, env(tt.env))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := settings.Load(filepath.Join(t.TempDir(), "absent.yaml"), env(nil))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate_Sentinel(t *testing.T) {
	s := settings.Defaults()
	s.RateLimit = 0
	assert.ErrorIs(t, s.Validate(), settings.ErrInvalid)
}

func TestLoad_OverridesRunLast(t *testing.T) {
	s, err := settings.Load("", env(map[string]string{settings.EnvCRS: "EPSG:2163"}), func(s *settings.Settings) {
		s.CRS = "EPSG:3857"
	})
	require.NoError(t, err, "an override can repair an invalid env value")
	assert.Equal(t, "EPSG:3857", s.CRS)
}
