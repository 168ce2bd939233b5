package shapefile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonas-p/go-shp"

	"cartographs/internal/geo"
	"cartographs/internal/table"
)

// GeometryColumn is the name of the column holding feature shapes.
const GeometryColumn = "geometry"

// ErrUnsupportedShape is returned for shape types other than polygons.
var ErrUnsupportedShape = errors.New("unsupported shape type")

// records is the subset of the go-shp readers this package consumes.
type records interface {
	Next() bool
	Shape() (int, shp.Shape)
	Attribute(n int) string
	Fields() []shp.Field
	Err() error
}

// ReadZip reads the single shapefile inside the zip archive at path.
// Coordinates are read as src and written as dst.
func ReadZip(path, name string, src, dst geo.CRS) (*table.Table, error) {
	zr, err := shp.OpenZip(path)
	if err != nil {
		return nil, fmt.Errorf("open shapefile zip: %w", err)
	}
	defer zr.Close()

	return build(zr, name, src, dst)
}

func build(rs records, name string, src, dst geo.CRS) (*table.Table, error) {
	project, err := geo.Transform(src, dst)
	if err != nil {
		return nil, err
	}

	fields := rs.Fields()
	tb := table.New(name, dst.String())
	kinds := make([]table.DType, len(fields))
	for i, f := range fields {
		kinds[i] = dtypeOf(f)
		if err := tb.AddColumn(f.String(), kinds[i]); err != nil {
			return nil, err
		}
	}
	if err := tb.AddColumn(GeometryColumn, table.Geometry); err != nil {
		return nil, err
	}

	row := make([]any, len(fields)+1)
	for rs.Next() {
		n, shape := rs.Shape()
		for i := range fields {
			v, err := parseValue(kinds[i], rs.Attribute(i))
			if err != nil {
				return nil, fmt.Errorf("record %d field %s: %w", n, fields[i], err)
			}
			row[i] = v
		}
		g, err := geometryOf(shape)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", n, err)
		}
		if g != nil {
			row[len(fields)] = g.Apply(project)
		} else {
			row[len(fields)] = nil
		}
		if err := tb.AppendRow(row...); err != nil {
			return nil, fmt.Errorf("record %d: %w", n, err)
		}
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("read shapefile: %w", err)
	}
	return tb, nil
}

func dtypeOf(f shp.Field) table.DType {
	switch f.Fieldtype {
	case 'N':
		if f.Precision == 0 {
			return table.Int64
		}
		return table.Float64
	case 'F':
		return table.Float64
	case 'L':
		return table.Bool
	default:
		return table.Object
	}
}

func parseValue(dt table.DType, raw string) (any, error) {
	s := strings.TrimSpace(strings.TrimRight(raw, "\x00"))
	if s == "" {
		return nil, nil
	}
	switch dt {
	case table.Int64:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, err
		}
		return v, nil
	case table.Float64:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		return v, nil
	case table.Bool:
		switch s {
		case "T", "t", "Y", "y":
			return true, nil
		case "F", "f", "N", "n":
			return false, nil
		case "?":
			return nil, nil
		}
		return nil, fmt.Errorf("logical value %q", s)
	default:
		return s, nil
	}
}

// geometryOf returns nil for null shapes.
func geometryOf(s shp.Shape) (geo.MultiPolygon, error) {
	switch p := s.(type) {
	case nil, *shp.Null:
		return nil, nil
	case *shp.Polygon:
		return polygonRings(p.Parts, p.Points), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedShape, s)
	}
}

// polygonRings splits points into rings and groups them. Shapefile outer rings
// run clockwise and holes counter-clockwise; a hole belongs to the outer ring
// before it.
func polygonRings(parts []int32, points []shp.Point) geo.MultiPolygon {
	var out geo.MultiPolygon
	for i, start := range parts {
		end := int32(len(points))
		if i+1 < len(parts) {
			end = parts[i+1]
		}
		if start < 0 || start > end || int(end) > len(points) {
			continue
		}
		ring := make(geo.Ring, 0, end-start)
		for _, pt := range points[start:end] {
			ring = append(ring, geo.Point{X: pt.X, Y: pt.Y})
		}
		if len(ring) == 0 {
			continue
		}
		if signedArea(ring) > 0 && len(out) > 0 {
			last := len(out) - 1
			out[last] = append(out[last], ring)
			continue
		}
		out = append(out, geo.Polygon{ring})
	}
	return out
}

// signedArea is positive for counter-clockwise rings.
func signedArea(r geo.Ring) float64 {
	var a float64
	for i := 0; i+1 < len(r); i++ {
		a += r[i].X*r[i+1].Y - r[i+1].X*r[i].Y
	}
	return a / 2
}
