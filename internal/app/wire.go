package app

import (
	"io"

	"github.com/rs/zerolog"

	"cartographs/internal/boundaries"
	"cartographs/internal/census"
	"cartographs/internal/domain"
	"cartographs/internal/settings"
)

// ProviderFactory builds the boundaries provider for a CRS.
type ProviderFactory func(crs string) (domain.BoundaryProvider, error)

// Wire bundles the collaborators the commands use.
type Wire struct {
	Settings   settings.Settings
	Boundaries domain.BoundaryProvider
	Log        zerolog.Logger
	Out        io.Writer
	Describe   bool
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config, logger zerolog.Logger) (*Wire, error) {
	s := cfg.Settings
	client := census.New(census.Config{
		BaseURL:   s.BaseURL,
		RateLimit: s.RateLimit,
		Checksums: s.Checksums,
		HTTP:      cfg.HTTP,
		Timeout:   s.Timeout,
	}, logger)

	return NewWireWith(cfg, logger, func(crs string) (domain.BoundaryProvider, error) {
		return boundaries.New(crs, client, boundaries.Options{
			Resolution: s.Resolution,
			TempDir:    cfg.TempDir,
		}, logger)
	})
}

// NewWireWith constructs the graph around a caller-supplied provider factory.
// The factory is called exactly once, with Settings.CRS.
func NewWireWith(cfg Config, logger zerolog.Logger, newProvider ProviderFactory) (*Wire, error) {
	if err := cfg.Settings.Validate(); err != nil {
		return nil, err
	}
	provider, err := newProvider(cfg.Settings.CRS)
	if err != nil {
		return nil, err
	}
	out := cfg.Out
	if out == nil {
		out = io.Discard
	}
	return &Wire{
		Settings:   cfg.Settings,
		Boundaries: provider,
		Log:        logger,
		Out:        out,
		Describe:   cfg.Describe,
	}, nil
}
