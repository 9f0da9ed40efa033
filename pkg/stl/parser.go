package stl

import (
	"fmt"
	"os"
)

// Parse decodes an STL buffer, detecting the encoding automatically.
// See DetectFormat for the classification rules.
func Parse(buf []byte) (*Model, error) {
	switch DetectFormat(buf) {
	case FormatBinary:
		return ParseBinary(buf)
	case FormatASCII:
		return ParseASCII(buf)
	default:
		return nil, &ParseError{
			Kind:    UnrecognizedFormat,
			Message: fmt.Sprintf("%d bytes are neither size-consistent binary STL nor text starting with \"solid\"", len(buf)),
		}
	}
}

// ParseFile reads and parses an STL file from disk
func ParseFile(filename string) (*Model, error) {
	buf, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(buf)
}
