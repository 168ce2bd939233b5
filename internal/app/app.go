package app

import (
	"context"
	"fmt"

	"cartographs/internal/domain"
	xlog "cartographs/internal/log"
	"cartographs/internal/table"
)

// Dataset names one of the boundary tables.
type Dataset string

const (
	States   Dataset = "states"
	Counties Dataset = "counties"
)

// Title is the heading printed before the dataset's summary.
func (d Dataset) Title() string {
	switch d {
	case States:
		return "States"
	case Counties:
		return "Counties"
	}
	return string(d)
}

func (d Dataset) fetch(ctx context.Context, p domain.BoundaryProvider, year int) (*table.Table, error) {
	switch d {
	case States:
		return p.States(ctx, year)
	case Counties:
		return p.Counties(ctx, year)
	}
	return nil, fmt.Errorf("unknown dataset %q", string(d))
}

// Run summarises the state then the county boundaries for Settings.Latest.
// It stops at the first failure.
func (w *Wire) Run(ctx context.Context) error {
	for _, d := range []Dataset{States, Counties} {
		if err := w.Summarize(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

// Summarize prints the dataset heading, fetches the dataset for
// Settings.Latest and logs its Info summary as a single event.
func (w *Wire) Summarize(ctx context.Context, d Dataset) error {
	year := w.Settings.Latest
	fmt.Fprintf(w.Out, "\n%s\n", d.Title())

	tb, err := d.fetch(ctx, w.Boundaries, year)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", d, err)
	}

	msg := tb.Info()
	if w.Describe {
		msg += "\n" + table.RenderStats(tb.Describe())
	}
	w.Log.Info().
		Str(xlog.FieldDataset, string(d)).
		Int(xlog.FieldYear, year).
		Str(xlog.FieldCRS, w.Boundaries.CRS()).
		Int(xlog.FieldRows, tb.Len()).
		Msg(msg)
	return nil
}
