package app

import (
	"io"
	"net/http"

	"cartographs/internal/settings"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Settings settings.Settings
	HTTP     *http.Client // optional; built from Settings.Timeout when nil
	Out      io.Writer    // dataset headings; defaults to io.Discard
	TempDir  string       // scratch root for downloads; defaults to os.TempDir()
	Describe bool         // append numeric column statistics to each summary
}
