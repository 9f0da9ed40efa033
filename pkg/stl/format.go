package stl

import (
	"bytes"
	"encoding/binary"
)

// Format identifies the encoding of an STL buffer
type Format int

const (
	FormatUnknown Format = iota
	FormatBinary
	FormatASCII
)

// String returns the format name
func (f Format) String() string {
	switch f {
	case FormatBinary:
		return "binary"
	case FormatASCII:
		return "ascii"
	}
	return "unknown"
}

const (
	binaryHeaderSize = 80
	binaryCountSize  = 4
	binaryRecordSize = 50
	binaryMinSize    = binaryHeaderSize + binaryCountSize
)

// MaxModelSize is the practical upload limit for model files. Declared
// triangle counts implying a larger file are rejected before any
// allocation happens.
const MaxModelSize = 50 << 20

const maxTriangleCount = (MaxModelSize - binaryMinSize) / binaryRecordSize

var solidToken = []byte("solid")

// DetectFormat classifies a raw buffer as binary or ASCII STL.
//
// Binary is decided by size arithmetic: a buffer is binary exactly when
// its length equals 84 + 50*N for the declared count N. That check is
// cheap and unambiguous, and takes precedence over the "solid" prefix
// because binary exporters routinely write headers that begin with the
// word "solid". A buffer shorter than 84 bytes can never be binary and
// is considered an ASCII candidate immediately.
func DetectFormat(buf []byte) Format {
	if len(buf) >= binaryMinSize {
		count := binary.LittleEndian.Uint32(buf[binaryHeaderSize:])
		expected := int64(binaryMinSize) + int64(count)*binaryRecordSize
		if expected == int64(len(buf)) {
			return FormatBinary
		}
	}
	if hasSolidPrefix(buf) {
		return FormatASCII
	}
	return FormatUnknown
}

// hasSolidPrefix reports whether the buffer starts with the ASCII "solid"
// keyword, ignoring case and leading whitespace
func hasSolidPrefix(buf []byte) bool {
	head := buf
	if len(head) > 64 {
		head = head[:64]
	}
	head = bytes.TrimLeft(head, " \t\r\n")
	if len(head) < len(solidToken) {
		return false
	}
	return bytes.EqualFold(head[:len(solidToken)], solidToken)
}
