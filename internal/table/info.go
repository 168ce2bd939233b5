package table

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"cartographs/internal/geo"
)

// Info renders a structural summary: index range, one line per column with its
// non-null count and dtype, a dtype tally and an estimate of memory held.
func (t *Table) Info() string {
	var b strings.Builder

	fmt.Fprintf(&b, "<Table %s, crs=%s>\n", t.Name, t.CRS)
	if t.rows == 0 {
		b.WriteString("RangeIndex: 0 entries\n")
	} else {
		fmt.Fprintf(&b, "RangeIndex: %d entries, 0 to %d\n", t.rows, t.rows-1)
	}

	if len(t.columns) == 0 {
		b.WriteString("Empty table\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Data columns (total %d columns):\n", len(t.columns))
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, " #\tColumn\tNon-Null Count\tDtype")
	fmt.Fprintln(tw, "---\t------\t--------------\t-----")
	tally := make(map[DType]int)
	for i, c := range t.columns {
		fmt.Fprintf(tw, " %d\t%s\t%d non-null\t%s\n", i, c.Name, c.NonNull(), c.DType)
		tally[c.DType]++
	}
	_ = tw.Flush()

	kinds := make([]string, 0, len(tally))
	for dt, n := range tally {
		kinds = append(kinds, fmt.Sprintf("%s(%d)", dt, n))
	}
	sort.Strings(kinds)
	fmt.Fprintf(&b, "dtypes: %s\n", strings.Join(kinds, ", "))
	fmt.Fprintf(&b, "memory usage: %s", humanize.Bytes(t.MemoryUsage()))
	return b.String()
}

// MemoryUsage estimates the bytes held by column data, counting string and
// geometry payloads rather than just their headers.
func (t *Table) MemoryUsage() uint64 {
	var n uint64
	for _, c := range t.columns {
		n += c.memoryUsage()
	}
	return n
}

const (
	wordSize    = 8
	sliceHeader = 3 * wordSize
	strHeader   = 2 * wordSize
	pointSize   = 2 * wordSize
)

func (c *Column) memoryUsage() uint64 {
	var n uint64
	switch c.DType {
	case Int64, Float64:
		n = uint64(len(c.values)) * wordSize
	case Bool:
		n = uint64(len(c.values))
	case Object:
		for _, v := range c.values {
			n += strHeader
			if s, ok := v.(string); ok {
				n += uint64(len(s))
			}
		}
	case Geometry:
		for _, v := range c.values {
			n += sliceHeader
			if g, ok := v.(geo.MultiPolygon); ok {
				n += uint64(len(g)+g.NumRings())*sliceHeader + uint64(g.NumPoints())*pointSize
			}
		}
	}
	return n
}
