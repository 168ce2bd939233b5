// Package boundaries serves US state and county boundary tables built from the
// Census Bureau's cartographic boundary files.
//
// A Provider is bound to one output CRS at construction. Each call downloads
// the archive for the requested year into a scratch directory, reads it and
// removes the directory again; nothing is kept between calls.
package boundaries
