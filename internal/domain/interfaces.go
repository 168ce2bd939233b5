package domain

import (
	"context"

	"cartographs/internal/table"
)

// BoundaryProvider returns boundary datasets projected into a single CRS.
type BoundaryProvider interface {
	// CRS is the canonical identifier of the output CRS, e.g. "EPSG:4326".
	CRS() string
	States(ctx context.Context, year int) (*table.Table, error)
	Counties(ctx context.Context, year int) (*table.Table, error)
}

// ArchiveFetcher downloads the named archive for year into dir.
type ArchiveFetcher interface {
	Fetch(ctx context.Context, year int, name, dir string) (Archive, error)
}
