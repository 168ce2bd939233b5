// Package shapefiletest writes small zipped polygon shapefiles for tests.
package shapefiletest

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonas-p/go-shp"
)

// Feature is one polygon record. Attrs line up with the fields passed to
// WriteZip and hold int, float64 or string values.
type Feature struct {
	Rings [][]shp.Point
	Attrs []any
}

// Square returns a closed clockwise ring, the orientation of an outer ring.
func Square(x, y, size float64) []shp.Point {
	return []shp.Point{
		{X: x, Y: y},
		{X: x, Y: y + size},
		{X: x + size, Y: y + size},
		{X: x + size, Y: y},
		{X: x, Y: y},
	}
}

// Hole returns a closed counter-clockwise ring.
func Hole(x, y, size float64) []shp.Point {
	r := Square(x, y, size)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return r
}

// WriteZip writes name.shp/.shx/.dbf into a zip at dir/name.zip and returns
// its path.
func WriteZip(t testing.TB, dir, name string, fields []shp.Field, features []Feature) string {
	t.Helper()

	work := t.TempDir()
	shpPath := filepath.Join(work, name+".shp")
	w, err := shp.Create(shpPath, shp.POLYGON)
	if err != nil {
		t.Fatalf("create shapefile: %v", err)
	}
	if err := w.SetFields(fields); err != nil {
		t.Fatalf("set fields: %v", err)
	}
	for i, f := range features {
		poly := shp.Polygon(*shp.NewPolyLine(f.Rings))
		w.Write(&poly)
		for j, v := range f.Attrs {
			if v == nil {
				continue
			}
			if err := w.WriteAttribute(i, j, v); err != nil {
				t.Fatalf("write attribute %d/%d: %v", i, j, err)
			}
		}
	}
	w.Close()

	// go-shp v0.1.1 names the attribute file "<base>dbf", without the dot.
	if err := os.Rename(filepath.Join(work, name+"dbf"), filepath.Join(work, name+".dbf")); err != nil && !os.IsNotExist(err) {
		t.Fatalf("rename dbf: %v", err)
	}

	zipPath := filepath.Join(dir, name+".zip")
	out, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, ext := range []string{".shp", ".shx", ".dbf"} {
		if err := addFile(zw, filepath.Join(work, name+ext)); err != nil {
			t.Fatalf("zip %s: %v", ext, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return zipPath
}

// CensusFields mirrors the attribute layout of the cartographic boundary files.
func CensusFields() []shp.Field {
	return []shp.Field{
		shp.StringField("STATEFP", 2),
		shp.StringField("GEOID", 5),
		shp.StringField("NAME", 100),
		shp.NumberField("ALAND", 14),
		shp.NumberField("AWATER", 14),
	}
}

// CensusFeature builds a square feature with CensusFields attributes.
func CensusFeature(statefp, geoid, name string, aland, awater int, x float64) Feature {
	return Feature{
		Rings: [][]shp.Point{Square(x, 30, 1)},
		Attrs: []any{statefp, geoid, name, aland, awater},
	}
}

func addFile(zw *zip.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w, err := zw.Create(strings.ToLower(filepath.Base(path)))
	if err != nil {
		return err
	}
	_, err = io.Copy(w, f)
	return err
}
