package stl

import "fmt"

// ErrorKind classifies pipeline failures so callers can react to the
// category without string matching
type ErrorKind int

const (
	// UnrecognizedFormat means the buffer is neither size-consistent
	// binary STL nor text starting with "solid"
	UnrecognizedFormat ErrorKind = iota
	// TruncatedOrCorrupt means the declared binary triangle count does
	// not match the actual buffer length
	TruncatedOrCorrupt
	// MalformedFacet means an ASCII facet block is structurally invalid
	MalformedFacet
	// EmptyMesh means parsing succeeded but produced zero triangles
	EmptyMesh
	// NumericOverflow means the declared triangle count is implausibly
	// large and was rejected before allocation
	NumericOverflow
	// FetchFailed means the byte source could not be read
	FetchFailed
)

// String returns the kind name
func (k ErrorKind) String() string {
	switch k {
	case UnrecognizedFormat:
		return "unrecognized format"
	case TruncatedOrCorrupt:
		return "truncated or corrupt"
	case MalformedFacet:
		return "malformed facet"
	case EmptyMesh:
		return "empty mesh"
	case NumericOverflow:
		return "numeric overflow"
	case FetchFailed:
		return "fetch failed"
	}
	return "unknown"
}

// ParseError is the typed failure returned by every pipeline stage.
// Only the fields relevant to Kind are populated: Expected/Actual carry
// byte counts for TruncatedOrCorrupt, Facet and Line locate a
// MalformedFacet, Err wraps the transport cause for FetchFailed.
type ParseError struct {
	Kind     ErrorKind
	Message  string
	Expected int64
	Actual   int64
	Facet    int
	Line     int
	Err      error
}

// Error formats the failure with its diagnostics
func (e *ParseError) Error() string {
	switch e.Kind {
	case TruncatedOrCorrupt:
		return fmt.Sprintf("%s: expected %d bytes, got %d", e.Kind, e.Expected, e.Actual)
	case MalformedFacet:
		if e.Line > 0 {
			return fmt.Sprintf("%s: facet %d at line %d: %s", e.Kind, e.Facet, e.Line, e.Message)
		}
		return fmt.Sprintf("%s: facet %d: %s", e.Kind, e.Facet, e.Message)
	case FetchFailed:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Kind, e.Err)
		}
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return e.Kind.String()
}

// Unwrap exposes the wrapped cause, if any
func (e *ParseError) Unwrap() error {
	return e.Err
}

func newTruncated(expected, actual int64) *ParseError {
	return &ParseError{Kind: TruncatedOrCorrupt, Expected: expected, Actual: actual}
}

func newMalformedFacet(facet, line int, format string, args ...any) *ParseError {
	return &ParseError{
		Kind:    MalformedFacet,
		Facet:   facet,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	}
}
