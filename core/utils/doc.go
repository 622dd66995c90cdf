// Package utils provides small type conversion helpers shared across the
// application, mainly for turning environment variable and flag values into
// concrete Go types.
package utils
