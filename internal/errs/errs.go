// Package errs defines the error kinds shared across duhist components.
package errs

import (
	"fmt"
	"strings"
)

// ConfigError reports an invalid configuration parameter. It is fatal and
// detected before any filesystem work starts.
type ConfigError struct {
	// Param is the offending parameter name.
	Param string
	// Reason describes why the value was rejected.
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
}

// EmptyResultError reports that an operation produced no entries for the
// given input paths.
type EmptyResultError struct {
	// Paths are the inputs that yielded nothing.
	Paths []string
}

// Error implements the error interface.
func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("no entries found for %s", strings.Join(e.Paths, ", "))
}
