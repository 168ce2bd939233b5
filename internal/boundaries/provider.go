package boundaries

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"cartographs/internal/census"
	"cartographs/internal/domain"
	"cartographs/internal/geo"
	xlog "cartographs/internal/log"
	"cartographs/internal/shapefile"
	"cartographs/internal/table"
)

// ErrUnsupported is returned for requests no archive exists for.
var ErrUnsupported = errors.New("unsupported boundary request")

// SourceCRS is the datum census boundary files are published in.
var SourceCRS = geo.NAD83

// Options tunes a Provider.
type Options struct {
	Resolution string // defaults to "500k"
	TempDir    string // scratch root; defaults to os.TempDir()
}

// Provider implements domain.BoundaryProvider over an ArchiveFetcher.
type Provider struct {
	crs        geo.CRS
	resolution string
	tempDir    string
	fetch      domain.ArchiveFetcher
	log        zerolog.Logger
}

var _ domain.BoundaryProvider = (*Provider)(nil)

// New returns a Provider that projects into crs.
func New(crs string, fetch domain.ArchiveFetcher, opts Options, logger zerolog.Logger) (*Provider, error) {
	c, err := geo.Parse(crs)
	if err != nil {
		return nil, err
	}
	if opts.Resolution == "" {
		opts.Resolution = "500k"
	}
	if !census.ValidResolution(opts.Resolution) {
		return nil, fmt.Errorf("%w: resolution %q", ErrUnsupported, opts.Resolution)
	}
	if fetch == nil {
		return nil, errors.New("boundaries: nil archive fetcher")
	}
	return &Provider{
		crs:        c,
		resolution: opts.Resolution,
		tempDir:    opts.TempDir,
		fetch:      fetch,
		log:        xlog.WithComponent(logger, "boundaries"),
	}, nil
}

// CRS returns the canonical "EPSG:NNNN" form of the construction CRS.
func (p *Provider) CRS() string { return p.crs.String() }

// States returns the state-level boundaries for year.
func (p *Provider) States(ctx context.Context, year int) (*table.Table, error) {
	return p.load(ctx, census.State, "states", year)
}

// Counties returns the county-level boundaries for year.
func (p *Provider) Counties(ctx context.Context, year int) (*table.Table, error) {
	return p.load(ctx, census.County, "counties", year)
}

func (p *Provider) load(ctx context.Context, level census.Level, dataset string, year int) (*table.Table, error) {
	if year < census.FirstYear {
		return nil, fmt.Errorf("%w: %s for %d, first published year is %d", ErrUnsupported, dataset, year, census.FirstYear)
	}

	dir, err := os.MkdirTemp(p.tempDir, "cartographs-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	start := time.Now()
	name := census.ArchiveName(year, level, p.resolution)
	archive, err := p.fetch.Fetch(ctx, year, name, dir)
	if err != nil {
		return nil, err
	}

	tb, err := shapefile.ReadZip(archive.Path, dataset, SourceCRS, p.crs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", archive.Name, err)
	}

	p.log.Debug().
		Str(xlog.FieldDataset, dataset).
		Int(xlog.FieldYear, year).
		Str(xlog.FieldCRS, p.crs.String()).
		Str(xlog.FieldArchive, archive.Name).
		Str(xlog.FieldDigest, archive.Digest).
		Int(xlog.FieldRows, tb.Len()).
		Dur(xlog.FieldDuration, time.Since(start)).
		Msg("boundaries loaded")
	return tb, nil
}
