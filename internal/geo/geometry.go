package geo

// Ring is a closed sequence of points. The first and last point are equal.
type Ring []Point

// Polygon is an outer ring followed by zero or more holes.
type Polygon []Ring

// MultiPolygon groups the polygons of a single feature, e.g. a state with islands.
type MultiPolygon []Polygon

// NumPoints returns the vertex count across all rings.
func (m MultiPolygon) NumPoints() int {
	n := 0
	for _, p := range m {
		for _, r := range p {
			n += len(r)
		}
	}
	return n
}

// NumRings returns the ring count across all polygons.
func (m MultiPolygon) NumRings() int {
	n := 0
	for _, p := range m {
		n += len(p)
	}
	return n
}

// Apply returns a copy of m with f applied to every point.
func (m MultiPolygon) Apply(f TransformFunc) MultiPolygon {
	out := make(MultiPolygon, len(m))
	for i, p := range m {
		out[i] = make(Polygon, len(p))
		for j, r := range p {
			nr := make(Ring, len(r))
			for k, pt := range r {
				nr[k] = f(pt)
			}
			out[i][j] = nr
		}
	}
	return out
}

// Bounds returns the min and max corners of m. ok is false for an empty geometry.
func (m MultiPolygon) Bounds() (lo, hi Point, ok bool) {
	for _, p := range m {
		for _, r := range p {
			for _, pt := range r {
				if !ok {
					lo, hi, ok = pt, pt, true
					continue
				}
				lo.X, lo.Y = min(lo.X, pt.X), min(lo.Y, pt.Y)
				hi.X, hi.Y = max(hi.X, pt.X), max(hi.Y, pt.Y)
			}
		}
	}
	return lo, hi, ok
}
