package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"cartographs/internal/census"
	"cartographs/internal/geo"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid settings")

// Settings is the run configuration.
type Settings struct {
	CRS        string            `yaml:"crs"`
	Latest     int               `yaml:"latest"`
	Resolution string            `yaml:"resolution"`
	BaseURL    string            `yaml:"base_url"`
	RateLimit  float64           `yaml:"rate_limit"`
	Timeout    time.Duration     `yaml:"timeout"`
	Checksums  map[string]string `yaml:"checksums"`
}

// Defaults returns the built-in configuration.
func Defaults() Settings {
	return Settings{
		CRS:        "EPSG:4326",
		Latest:     2023,
		Resolution: "500k",
		BaseURL:    census.DefaultBaseURL,
		RateLimit:  2,
		Timeout:    2 * time.Minute,
	}
}

// Environment variable names read by ApplyEnv.
const (
	EnvCRS        = "CARTOGRAPHS_CRS"
	EnvYear       = "CARTOGRAPHS_YEAR"
	EnvResolution = "CARTOGRAPHS_RESOLUTION"
	EnvBaseURL    = "CARTOGRAPHS_BASE_URL"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Override adjusts settings after the file and environment are applied.
type Override func(*Settings)

// Load layers defaults, the YAML file at path (skipped when empty), the
// environment and then overrides, and validates the result.
func Load(path string, lookup LookupFunc, overrides ...Override) (Settings, error) {
	s := Defaults()
	if path != "" {
		// #nosec G304 -- the config path is supplied by the operator
		data, err := os.ReadFile(path)
		if err != nil {
			return Settings{}, fmt.Errorf("read config: %w", err)
		}
		if err := s.decode(data); err != nil {
			return Settings{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if err := s.ApplyEnv(lookup); err != nil {
		return Settings{}, err
	}
	for _, o := range overrides {
		o(&s)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// decode overlays YAML onto s. Keys absent from the document keep their value.
func (s *Settings) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("config file contains multiple documents or trailing content")
	}
	return nil
}

// ApplyEnv overlays the CARTOGRAPHS_* variables that are set and non-empty.
func (s *Settings) ApplyEnv(lookup LookupFunc) error {
	if v, ok := lookup(EnvCRS); ok && v != "" {
		s.CRS = v
	}
	if v, ok := lookup(EnvYear); ok && v != "" {
		year, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a year", ErrInvalid, EnvYear, v)
		}
		s.Latest = year
	}
	if v, ok := lookup(EnvResolution); ok && v != "" {
		s.Resolution = v
	}
	if v, ok := lookup(EnvBaseURL); ok && v != "" {
		s.BaseURL = v
	}
	return nil
}

// Validate checks every field and returns the first problem found.
func (s Settings) Validate() error {
	if _, err := geo.Parse(s.CRS); err != nil {
		return fmt.Errorf("%w: crs: %v", ErrInvalid, err)
	}
	if s.Latest < census.FirstYear {
		return fmt.Errorf("%w: latest %d is before %d", ErrInvalid, s.Latest, census.FirstYear)
	}
	if !census.ValidResolution(s.Resolution) {
		return fmt.Errorf("%w: resolution %q, want one of %s", ErrInvalid, s.Resolution, strings.Join(census.Resolutions, ", "))
	}
	if !strings.HasPrefix(s.BaseURL, "http://") && !strings.HasPrefix(s.BaseURL, "https://") {
		return fmt.Errorf("%w: base_url %q must be http(s)", ErrInvalid, s.BaseURL)
	}
	if s.RateLimit <= 0 {
		return fmt.Errorf("%w: rate_limit must be positive", ErrInvalid)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalid)
	}
	return nil
}
