package table

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"text/tabwriter"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarises one numeric column. Fields other than Count are NaN when
// the column has no values; Std is NaN with fewer than two.
type Stats struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// Describe computes Stats for every numeric column, in column order.
// Quartiles use gonum's linear interpolation of the empirical CDF.
func (t *Table) Describe() []Stats {
	var out []Stats
	for _, c := range t.columns {
		if !c.Numeric() {
			continue
		}
		out = append(out, describe(c))
	}
	return out
}

func describe(c *Column) Stats {
	xs := c.Float64s()
	s := Stats{Column: c.Name, Count: len(xs)}
	nan := math.NaN()
	if len(xs) == 0 {
		s.Mean, s.Std, s.Min, s.Q1, s.Median, s.Q3, s.Max = nan, nan, nan, nan, nan, nan, nan
		return s
	}
	sort.Float64s(xs)
	s.Mean = stat.Mean(xs, nil)
	s.Std = nan
	if len(xs) > 1 {
		s.Std = stat.StdDev(xs, nil)
	}
	s.Min = floats.Min(xs)
	s.Max = floats.Max(xs)
	s.Q1 = stat.Quantile(0.25, stat.LinInterp, xs, nil)
	s.Median = stat.Quantile(0.5, stat.LinInterp, xs, nil)
	s.Q3 = stat.Quantile(0.75, stat.LinInterp, xs, nil)
	return s
}

// RenderStats lays stats out with one column per numeric field.
func RenderStats(stats []Stats) string {
	if len(stats) == 0 {
		return "no numeric columns"
	}
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "\t")
	for _, s := range stats {
		fmt.Fprintf(tw, "%s\t", s.Column)
	}
	fmt.Fprintln(tw)

	rows := []struct {
		label string
		get   func(Stats) float64
	}{
		{"count", func(s Stats) float64 { return float64(s.Count) }},
		{"mean", func(s Stats) float64 { return s.Mean }},
		{"std", func(s Stats) float64 { return s.Std }},
		{"min", func(s Stats) float64 { return s.Min }},
		{"25%", func(s Stats) float64 { return s.Q1 }},
		{"50%", func(s Stats) float64 { return s.Median }},
		{"75%", func(s Stats) float64 { return s.Q3 }},
		{"max", func(s Stats) float64 { return s.Max }},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t", r.label)
		for _, s := range stats {
			fmt.Fprintf(tw, "%.6g\t", r.get(s))
		}
		fmt.Fprintln(tw)
	}
	_ = tw.Flush()
	return strings.TrimRight(b.String(), "\n")
}
