// Package main runs a local HTTP mirror of the Census cartographic boundary
// download tree, so cartographs can run offline or against pinned archives.
//
// HTTP API
//
//	GET /GENZ{year}/shp/cb_{year}_us_{level}_{resolution}.zip
//	    Return the archive of that name found under --dir.
//
//	GET /index
//	    Return the served paths as a JSON array.
//
// Behaviour
//
//   - --dir is scanned once at start-up, recursively, for files named
//     cb_{year}_us_*.zip. Later additions need a restart.
//   - Unknown paths get 404; methods other than GET and HEAD get 405.
//   - A lightweight access log records method, path, status, bytes and
//     duration for each request.
//   - The default listen address is :8080.
//
// Point the CLI at it with --base-url http://127.0.0.1:8080.
package main
