package shapefile

import (
	"errors"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cartographs/internal/geo"
	"cartographs/internal/shapefile/shapefiletest"
	"cartographs/internal/table"
)

type fakeRecords struct {
	fields []shp.Field
	shapes []shp.Shape
	attrs  [][]string
	pos    int
	err    error
}

func (f *fakeRecords) Next() bool {
	if f.pos >= len(f.shapes) {
		return false
	}
	f.pos++
	return true
}

func (f *fakeRecords) Shape() (int, shp.Shape) { return f.pos - 1, f.shapes[f.pos-1] }
func (f *fakeRecords) Attribute(n int) string  { return f.attrs[f.pos-1][n] }
func (f *fakeRecords) Fields() []shp.Field     { return f.fields }
func (f *fakeRecords) Err() error              { return f.err }

func polygon(rings ...[]shp.Point) *shp.Polygon {
	p := shp.Polygon(*shp.NewPolyLine(rings))
	return &p
}

func TestBuild_TypesAndNulls(t *testing.T) {
	rs := &fakeRecords{
		fields: []shp.Field{
			shp.StringField("NAME", 20),
			shp.NumberField("ALAND", 14),
			shp.FloatField("SHARE", 10, 3),
			{Name: [11]byte{'A', 'C', 'T', 'I', 'V', 'E'}, Fieldtype: 'L', Size: 1},
			shp.DateField("UPDATED"),
		},
		shapes: []shp.Shape{
			polygon(shapefiletest.Square(0, 0, 1)),
			&shp.Null{},
		},
		attrs: [][]string{
			{"Alabama   ", "131185042550", " 0.125", "T", "20230101"},
			{"", "  ", "", "?", "\x00\x00"},
		},
	}

	tb, err := build(rs, "states", geo.NAD83, geo.WGS84)
	require.NoError(t, err)
	require.Equal(t, 2, tb.Len())
	assert.Equal(t, "EPSG:4326", tb.CRS)

	want := map[string]table.DType{
		"NAME": table.Object, "ALAND": table.Int64, "SHARE": table.Float64,
		"ACTIVE": table.Bool, "UPDATED": table.Object, GeometryColumn: table.Geometry,
	}
	for name, dt := range want {
		c, ok := tb.Column(name)
		require.True(t, ok, name)
		assert.Equal(t, dt, c.DType, name)
		assert.Equal(t, 1, c.NonNull(), name)
	}

	name, _ := tb.Column("NAME")
	assert.Equal(t, "Alabama", name.Value(0))
	aland, _ := tb.Column("ALAND")
	assert.Equal(t, int64(131185042550), aland.Value(0))
	share, _ := tb.Column("SHARE")
	assert.Equal(t, 0.125, share.Value(0))
	active, _ := tb.Column("ACTIVE")
	assert.Equal(t, true, active.Value(0))
}

func TestBuild_BadNumber(t *testing.T) {
	rs := &fakeRecords{
		fields: []shp.Field{shp.NumberField("ALAND", 14)},
		shapes: []shp.Shape{&shp.Null{}},
		attrs:  [][]string{{"12x"}},
	}
	_, err := build(rs, "states", geo.NAD83, geo.WGS84)
	assert.Error(t, err)
}

func TestBuild_UnsupportedShape(t *testing.T) {
	rs := &fakeRecords{
		shapes: []shp.Shape{&shp.Point{X: 1, Y: 2}},
		attrs:  [][]string{{}},
	}
	_, err := build(rs, "points", geo.NAD83, geo.WGS84)
	assert.ErrorIs(t, err, ErrUnsupportedShape)
}

func TestBuild_ReaderError(t *testing.T) {
	boom := errors.New("truncated dbf")
	_, err := build(&fakeRecords{err: boom}, "states", geo.NAD83, geo.WGS84)
	assert.ErrorIs(t, err, boom)
}

func TestBuild_Reprojects(t *testing.T) {
	rs := &fakeRecords{
		shapes: []shp.Shape{polygon(shapefiletest.Square(0, 0, 1))},
		attrs:  [][]string{{}},
	}
	tb, err := build(rs, "states", geo.NAD83, geo.WebMercator)
	require.NoError(t, err)
	assert.Equal(t, "EPSG:3857", tb.CRS)

	c, _ := tb.Column(GeometryColumn)
	g := c.Value(0).(geo.MultiPolygon)
	_, hi, ok := g.Bounds()
	require.True(t, ok)
	assert.InDelta(t, 111319.49, hi.X, 0.01)
}

func TestPolygonRings_GroupsHoles(t *testing.T) {
	p := polygon(
		shapefiletest.Square(0, 0, 10),
		shapefiletest.Hole(2, 2, 1),
		shapefiletest.Square(20, 20, 1),
	)
	g := polygonRings(p.Parts, p.Points)
	require.Len(t, g, 2)
	assert.Len(t, g[0], 2, "outer ring plus hole")
	assert.Len(t, g[1], 1)
	assert.Equal(t, 15, g.NumPoints())
}

func TestPolygonRings_LeadingHoleStartsPolygon(t *testing.T) {
	p := polygon(
		shapefiletest.Hole(0, 0, 1),
		shapefiletest.Hole(5, 5, 1),
		shapefiletest.Square(10, 10, 1),
	)
	g := polygonRings(p.Parts, p.Points)
	require.Len(t, g, 2)
	assert.Len(t, g[0], 2, "the leading ring opens a polygon and the next hole joins it")
	assert.Len(t, g[1], 1)
	assert.Equal(t, 0.0, g[0][0][0].X)
	assert.Equal(t, 10.0, g[1][0][0].X)
}

func TestReadZip(t *testing.T) {
	dir := t.TempDir()
	path := shapefiletest.WriteZip(t, dir, "cb_2023_us_state_500k", shapefiletest.CensusFields(), []shapefiletest.Feature{
		shapefiletest.CensusFeature("06", "06", "California", 403673617862, 20291712025, -120),
		shapefiletest.CensusFeature("41", "41", "Oregon", 248630419895, 6168341953, -121),
	})

	tb, err := ReadZip(path, "states", geo.NAD83, geo.WGS84)
	require.NoError(t, err)
	assert.Equal(t, 2, tb.Len())
	require.Len(t, tb.Columns(), 6)

	name, _ := tb.Column("NAME")
	assert.Equal(t, "Oregon", name.Value(1))
	aland, _ := tb.Column("ALAND")
	assert.Equal(t, table.Int64, aland.DType)
	assert.Equal(t, int64(403673617862), aland.Value(0))

	geom, _ := tb.Column(GeometryColumn)
	assert.Equal(t, 2, geom.NonNull())
}

func TestReadZip_Missing(t *testing.T) {
	_, err := ReadZip(t.TempDir()+"/nope.zip", "states", geo.NAD83, geo.WGS84)
	assert.Error(t, err)
}
