package main

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"cartographs/internal/census"
	xlog "cartographs/internal/log"
)

var archiveName = regexp.MustCompile(`^cb_(\d{4})_us_[a-z0-9]+_[a-z0-9]+\.zip$`)

// mirror is read-only after newMirror returns.
type mirror struct {
	files map[string]string // URL path -> file path
	log   zerolog.Logger
}

// newMirror indexes every archive below dir.
func newMirror(dir string, logger zerolog.Logger) (*mirror, error) {
	m := &mirror{files: make(map[string]string), log: logger}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		match := archiveName.FindStringSubmatch(d.Name())
		if match == nil {
			return nil
		}
		year, _ := strconv.Atoi(match[1])
		urlPath := census.ArchivePath(year, d.Name())
		if prev, dup := m.files[urlPath]; dup {
			return fmt.Errorf("archive %s found twice: %s and %s", d.Name(), prev, path)
		}
		m.files[urlPath] = path
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (m *mirror) paths() []string {
	out := make([]string, 0, len(m.files))
	for p := range m.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (m *mirror) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/index", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(m.paths())
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		path, ok := m.files[r.URL.Path]
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/zip")
		http.ServeFile(w, r, path)
	})
	return m.accessLog(mux)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

func (m *mirror) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		m.log.Info().
			Str("method", r.Method).
			Str(xlog.FieldPath, r.URL.Path).
			Str("remote", r.RemoteAddr).
			Int("status", rec.status).
			Int(xlog.FieldBytes, rec.bytes).
			Dur(xlog.FieldDuration, time.Since(start)).
			Msg("request")
	})
}
