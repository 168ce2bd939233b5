// Package table holds the in-memory tabular datasets returned by boundary
// providers: ordered, typed columns with nullable values, plus the two
// descriptive summaries cartographs logs (Info and Describe).
package table
