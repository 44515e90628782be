package ot

import (
	"errors"
	"fmt"
)

// Error kinds. Errors returned by this package wrap one of these, so clients
// may test for them with errors.Is.
var (
	// ErrTruncatedBuffer is returned if a record or table is constructed over
	// fewer bytes than its layout requires.
	ErrTruncatedBuffer = errors.New("truncated buffer")
	// ErrInvalidGlyphDefinition is returned if a glyph uses the reserved
	// code-point 0 without being named '.null'.
	ErrInvalidGlyphDefinition = errors.New("invalid glyph definition")
	// ErrMalformedGlyph flags broken outline data, dangling component
	// references and cycles between composite glyphs.
	ErrMalformedGlyph = errors.New("malformed glyph")
	// ErrGlyphIndexOverflow is returned if a cmap group would map a code-point
	// beyond the 16-bit glyph index range.
	ErrGlyphIndexOverflow = errors.New("glyph index overflow")
	// ErrMissingTable is returned by operations which depend on a table the
	// font does not contain. Font.Table itself never returns it.
	ErrMissingTable = errors.New("missing table")
	// ErrFontFormat is the general error for structural problems of font data.
	ErrFontFormat = errors.New("font format")
)

// ErrorSeverity represents the severity level of a font error.
type ErrorSeverity int

const (
	// SeverityCritical indicates a severe error that makes the font unusable or unreliable.
	SeverityCritical ErrorSeverity = iota
	// SeverityMajor indicates a significant error that may affect functionality but doesn't prevent usage.
	SeverityMajor
	// SeverityMinor indicates a minor issue that can be safely ignored in most cases.
	SeverityMinor
)

// String returns a human-readable representation of the error severity.
func (s ErrorSeverity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityMajor:
		return "MAJOR"
	case SeverityMinor:
		return "MINOR"
	default:
		return "UNKNOWN"
	}
}

// FontError represents an error encountered while interpreting or rebuilding
// font data.
type FontError struct {
	Table    Tag           // The table where the error occurred (e.g., "glyf", "cmap")
	Section  string        // Specific section within the table (e.g., "format12", "component")
	Issue    string        // Human-readable description of the issue
	Severity ErrorSeverity // Severity level of the error
	Offset   uint32        // Byte offset within the table where the error occurred (0 if unknown)
	Err      error         // One of the error kinds of this package, or nil
}

// Error implements the error interface.
func (e FontError) Error() string {
	var s string
	if e.Offset > 0 {
		s = fmt.Sprintf("[%s] %s/%s at offset %d: %s", e.Severity, e.Table, e.Section, e.Offset, e.Issue)
	} else {
		s = fmt.Sprintf("[%s] %s/%s: %s", e.Severity, e.Table, e.Section, e.Issue)
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap returns the error kind, making FontError usable with errors.Is.
func (e FontError) Unwrap() error {
	return e.Err
}

func errTruncated(table Tag, section string, need, have int) error {
	return FontError{
		Table:    table,
		Section:  section,
		Issue:    fmt.Sprintf("need %d bytes, have %d", need, have),
		Severity: SeverityCritical,
		Err:      ErrTruncatedBuffer,
	}
}

// errFontFormat produces user level errors for font data problems.
func errFontFormat(table Tag, section, issue string) error {
	return FontError{
		Table:    table,
		Section:  section,
		Issue:    issue,
		Severity: SeverityCritical,
		Err:      ErrFontFormat,
	}
}

func errMalformedGlyph(g GlyphIndex, issue string) error {
	return FontError{
		Table:    T("glyf"),
		Section:  fmt.Sprintf("glyph %d", g),
		Issue:    issue,
		Severity: SeverityCritical,
		Err:      ErrMalformedGlyph,
	}
}

// MissingTableError returns an error wrapping ErrMissingTable for a table
// which is required by an operation.
func MissingTableError(tag Tag, operation string) error {
	return FontError{
		Table:    tag,
		Section:  operation,
		Issue:    "table is required",
		Severity: SeverityCritical,
		Err:      ErrMissingTable,
	}
}
