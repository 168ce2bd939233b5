// Package domain defines the contracts shared across cartographs.
// It contains plain types and interfaces only.
package domain
