package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cartographs/internal/geo"
)

func TestParse(t *testing.T) {
	for _, id := range []string{"EPSG:4326", "epsg:4326", " 4326 "} {
		c, err := geo.Parse(id)
		require.NoError(t, err, id)
		assert.Equal(t, geo.WGS84, c)
	}

	c, err := geo.Parse("EPSG:3857")
	require.NoError(t, err)
	assert.Equal(t, "EPSG:3857", c.String())

	for _, id := range []string{"", "EPSG:2163", "ESRI:102003", "wgs84"} {
		_, err := geo.Parse(id)
		assert.ErrorIs(t, err, geo.ErrUnknownCRS, id)
	}
}

func TestTransform_GeographicIsIdentity(t *testing.T) {
	f, err := geo.Transform(geo.NAD83, geo.WGS84)
	require.NoError(t, err)
	p := geo.Point{X: -122.4194, Y: 37.7749}
	assert.Equal(t, p, f(p))
}

func TestTransform_Mercator(t *testing.T) {
	to, err := geo.Transform(geo.NAD83, geo.WebMercator)
	require.NoError(t, err)
	back, err := geo.Transform(geo.WebMercator, geo.NAD83)
	require.NoError(t, err)

	origin := to(geo.Point{})
	assert.InDelta(t, 0, origin.X, 1e-9)
	assert.InDelta(t, 0, origin.Y, 1e-9)

	// 180 degrees of longitude is half the equatorial circumference.
	edge := to(geo.Point{X: 180})
	assert.InDelta(t, 20037508.342789244, edge.X, 1e-6)

	p := geo.Point{X: -122.4194, Y: 37.7749}
	m := to(p)
	assert.InDelta(t, -13627665.27, m.X, 0.01)
	assert.InDelta(t, 4547675.35, m.Y, 0.01)

	r := back(m)
	assert.InDelta(t, p.X, r.X, 1e-9)
	assert.InDelta(t, p.Y, r.Y, 1e-9)
}

func TestTransform_ClampsPoles(t *testing.T) {
	to, err := geo.Transform(geo.WGS84, geo.WebMercator)
	require.NoError(t, err)
	assert.Equal(t, to(geo.Point{Y: 89.9}), to(geo.Point{Y: 85.05112878}))
}

func TestTransform_Unknown(t *testing.T) {
	_, err := geo.Transform(geo.CRS{Code: 2163}, geo.WGS84)
	assert.ErrorIs(t, err, geo.ErrUnknownCRS)
}
