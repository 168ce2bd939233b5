// Package commands defines the cartographs CLI and wires dependencies for subcommands.
//
// Commands
//
//   - (root)     Summarise the state then the county boundaries
//   - states     Summarise the state boundaries only
//   - counties   Summarise the county boundaries only
//   - version    Print the build version
//
// # Implementation
//
// The root command builds the logger first, then loads settings (defaults,
// --config file, CARTOGRAPHS_* environment, flags) and constructs the
// dependency graph before any subcommand runs, so handlers share one
// boundaries provider bound to the configured CRS.
package commands
