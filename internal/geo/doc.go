// Package geo knows the coordinate reference systems cartographs can emit and
// how to move points between them.
//
// Census cartographic boundary files are published in NAD83 (EPSG:4269).
// WGS84 (EPSG:4326) differs from NAD83 by about a metre, well under the
// generalisation of the 1:500k files, so the two are treated as equivalent.
// Web mercator (EPSG:3857) uses the spherical projection.
package geo
