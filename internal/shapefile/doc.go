// Package shapefile turns a zipped ESRI shapefile into a table.Table.
//
// DBF attribute types map onto table dtypes:
//
//	C (character)            object
//	N with zero decimals     int64
//	N with decimals, F       float64
//	L (logical)              bool
//	D (date, YYYYMMDD)       object
//
// Blank attribute values become nulls. Polygon shapes are grouped into
// multipolygons by ring orientation and stored in a trailing "geometry"
// column, reprojected into the requested CRS.
package shapefile
