// Package errors defines the stable error codes used across depscope.
package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// InvalidEdge indicates an edge references a blank module id
	InvalidEdge ErrorCode = "INVALID_EDGE"
	// NonConvergence indicates PageRank hit the iteration cap; reported in
	// results via converged=false, never raised as a failure
	NonConvergence ErrorCode = "NON_CONVERGENCE"
	// EmptyGraph indicates a zero-node graph; informational, never fatal
	EmptyGraph ErrorCode = "EMPTY_GRAPH"
	// ScanFailed indicates the import scanner could not read sources
	ScanFailed ErrorCode = "SCAN_FAILED"
	// CacheUnavailable indicates the result cache could not be opened
	CacheUnavailable ErrorCode = "CACHE_UNAVAILABLE"
	// ConfigInvalid indicates a malformed configuration file
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Command     string `json:"command,omitempty"`
	Safe        bool   `json:"safe,omitempty"`
	Description string `json:"description,omitempty"`
}

// DepscopeError represents a depscope error with code, message, and suggestions
type DepscopeError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// NewDepscopeError creates a new DepscopeError
func NewDepscopeError(code ErrorCode, message string, cause error) *DepscopeError {
	return &DepscopeError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: GetSuggestedFixes(code),
	}
}

// Error implements the error interface
func (e *DepscopeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DepscopeError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *DepscopeError) WithDetails(details interface{}) *DepscopeError {
	e.Details = details
	return e
}

// CodeOf returns the error code carried by err, or InternalError
// when err is not a DepscopeError.
func CodeOf(err error) ErrorCode {
	if de, ok := err.(*DepscopeError); ok {
		return de.Code
	}
	return InternalError
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	InvalidEdge: {
		{
			Command:     "depscope analyze --format json",
			Safe:        true,
			Description: "Re-run the scan; blank module ids usually come from hand-built edge lists",
		},
	},
	ScanFailed: {
		{
			Command:     "depscope analyze --log-level=debug",
			Safe:        true,
			Description: "Re-run with debug logging to see which file failed",
		},
	},
	CacheUnavailable: {
		{
			Command:     "rm -rf .depscope/depscope.db",
			Safe:        false,
			Description: "Remove the cache database; it is recreated on the next run",
		},
	},
	ConfigInvalid: {
		{
			Command:     "depscope init --force",
			Safe:        false,
			Description: "Rewrite .depscope/config.json with defaults",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
