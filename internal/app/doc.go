// Package app wires cartographs' dependencies and runs the summary routine.
//
// NewWire builds the archive client and boundaries provider from Config,
// exposing them via the Wire struct. Run fetches the state then county
// datasets for the configured year and logs a summary of each.
package app
