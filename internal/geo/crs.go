package geo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrUnknownCRS is returned for identifiers outside the registry.
var ErrUnknownCRS = errors.New("unknown crs")

// Kind distinguishes angular from projected coordinates.
type Kind int

const (
	Geographic Kind = iota
	Projected
)

// CRS describes one supported coordinate reference system.
type CRS struct {
	Code  int
	Name  string
	Kind  Kind
	Datum string
}

// String returns the canonical "EPSG:NNNN" identifier.
func (c CRS) String() string { return "EPSG:" + strconv.Itoa(c.Code) }

var (
	NAD83       = CRS{Code: 4269, Name: "NAD83", Kind: Geographic, Datum: "NAD83"}
	WGS84       = CRS{Code: 4326, Name: "WGS 84", Kind: Geographic, Datum: "WGS84"}
	WebMercator = CRS{Code: 3857, Name: "WGS 84 / Pseudo-Mercator", Kind: Projected, Datum: "WGS84"}
)

var registry = map[int]CRS{
	NAD83.Code:       NAD83,
	WGS84.Code:       WGS84,
	WebMercator.Code: WebMercator,
}

// Parse resolves "EPSG:4326", "epsg:4326" or "4326".
func Parse(id string) (CRS, error) {
	s := strings.TrimSpace(id)
	if i := strings.IndexByte(s, ':'); i >= 0 {
		if !strings.EqualFold(s[:i], "epsg") {
			return CRS{}, fmt.Errorf("%w: %q", ErrUnknownCRS, id)
		}
		s = s[i+1:]
	}
	code, err := strconv.Atoi(s)
	if err != nil {
		return CRS{}, fmt.Errorf("%w: %q", ErrUnknownCRS, id)
	}
	c, ok := registry[code]
	if !ok {
		return CRS{}, fmt.Errorf("%w: %q", ErrUnknownCRS, id)
	}
	return c, nil
}

// Point is an x/y pair: lon/lat degrees for geographic systems, metres for
// projected ones.
type Point struct {
	X, Y float64
}

// TransformFunc maps a point from one CRS into another.
type TransformFunc func(Point) Point

const (
	earthRadius = 6378137.0
	maxMercLat  = 85.05112878
)

// Transform returns the point mapping from -> to.
func Transform(from, to CRS) (TransformFunc, error) {
	if _, ok := registry[from.Code]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCRS, from)
	}
	if _, ok := registry[to.Code]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCRS, to)
	}
	switch {
	case from.Kind == to.Kind:
		return identity, nil
	case from.Kind == Geographic:
		return toMercator, nil
	default:
		return fromMercator, nil
	}
}

func identity(p Point) Point { return p }

func toMercator(p Point) Point {
	lat := math.Max(-maxMercLat, math.Min(maxMercLat, p.Y))
	x := earthRadius * p.X * math.Pi / 180
	y := earthRadius * math.Log(math.Tan(math.Pi/4+lat*math.Pi/360))
	return Point{X: x, Y: y}
}

func fromMercator(p Point) Point {
	lon := p.X / earthRadius * 180 / math.Pi
	lat := (2*math.Atan(math.Exp(p.Y/earthRadius)) - math.Pi/2) * 180 / math.Pi
	return Point{X: lon, Y: lat}
}
