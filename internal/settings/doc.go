// Package settings holds the run configuration: the CRS datasets are
// projected into, the default query year, and where archives come from.
//
// Values are layered: built-in defaults, then an optional YAML file (unknown
// keys are rejected), then CARTOGRAPHS_* environment variables. Command-line
// flags are applied last by the CLI. The result is validated once and not
// changed afterwards.
package settings
