package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := NewDepscopeError(ScanFailed, "cannot open file", stderrors.New("permission denied"))

	msg := err.Error()
	if !strings.Contains(msg, "SCAN_FAILED") || !strings.Contains(msg, "permission denied") {
		t.Errorf("Error() = %q", msg)
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	err := NewDepscopeError(InternalError, "wrapper", cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is does not reach the cause")
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(NewDepscopeError(ConfigInvalid, "bad", nil)); got != ConfigInvalid {
		t.Errorf("CodeOf = %s, want %s", got, ConfigInvalid)
	}
	if got := CodeOf(stderrors.New("plain")); got != InternalError {
		t.Errorf("CodeOf(plain) = %s, want %s", got, InternalError)
	}
}

func TestSuggestedFixesAttached(t *testing.T) {
	err := NewDepscopeError(CacheUnavailable, "cannot open db", nil)
	if len(err.SuggestedFixes) == 0 {
		t.Error("no suggested fixes for CACHE_UNAVAILABLE")
	}

	err = NewDepscopeError(EmptyGraph, "nothing to analyze", nil)
	if len(err.SuggestedFixes) != 0 {
		t.Errorf("unexpected fixes for EMPTY_GRAPH: %+v", err.SuggestedFixes)
	}
}

func TestWithDetails(t *testing.T) {
	err := NewDepscopeError(InvalidEdge, "blank id", nil).
		WithDetails(map[string]string{"from": "", "to": "b"})
	details, ok := err.Details.(map[string]string)
	if !ok || details["to"] != "b" {
		t.Errorf("details = %+v", err.Details)
	}
}
