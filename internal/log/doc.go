// Package log builds the process logger.
//
// The logger is constructed once by the entry point and passed explicitly to
// every component that needs it. Nothing in this package keeps global state
// beyond zerolog's own time format.
package log
