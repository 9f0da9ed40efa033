package stl

import (
	"bytes"
	"encoding/binary"
	"math"
	"unicode"

	"github.com/edu3d/stlview/pkg/geometry"
)

// ParseBinary decodes a buffer holding binary STL: an 80-byte free-form
// header, a little-endian uint32 triangle count N, then N fixed 50-byte
// records. The buffer length must equal 84 + 50*N exactly; a mismatch is
// reported as TruncatedOrCorrupt with the expected and actual byte
// counts, never clipped or padded.
func ParseBinary(buf []byte) (*Model, error) {
	if len(buf) < binaryMinSize {
		return nil, newTruncated(binaryMinSize, int64(len(buf)))
	}

	count := binary.LittleEndian.Uint32(buf[binaryHeaderSize:])
	if count > maxTriangleCount {
		return nil, &ParseError{
			Kind:    NumericOverflow,
			Message: "declared triangle count exceeds the model size limit",
			Actual:  int64(count),
		}
	}

	expected := int64(binaryMinSize) + int64(count)*binaryRecordSize
	if expected != int64(len(buf)) {
		return nil, newTruncated(expected, int64(len(buf)))
	}

	model := NewModel(headerName(buf[:binaryHeaderSize]))
	model.Format = FormatBinary
	model.Triangles = make([]geometry.Triangle, 0, count)

	for i := 0; i < int(count); i++ {
		record := buf[binaryMinSize+i*binaryRecordSize:]

		normal := vec3At(record, 0)
		v1 := vec3At(record, 12)
		v2 := vec3At(record, 24)
		v3 := vec3At(record, 36)
		// Trailing 2-byte attribute word is skipped

		model.AddTriangle(geometry.NewTriangle(normal, v1, v2, v3))
	}

	return model, nil
}

// vec3At reads three consecutive little-endian float32 values
func vec3At(buf []byte, offset int) geometry.Vector3 {
	return geometry.NewVector3(
		float64(float32At(buf, offset)),
		float64(float32At(buf, offset+4)),
		float64(float32At(buf, offset+8)),
	)
}

func float32At(buf []byte, offset int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:]))
}

// headerName extracts a printable model name from the 80-byte binary
// header. The header is free-form and never validated; anything that is
// not clean printable text is discarded.
func headerName(header []byte) string {
	trimmed := bytes.TrimRight(header, "\x00 ")
	for _, r := range string(trimmed) {
		if r == unicode.ReplacementChar || (!unicode.IsPrint(r) && r != '\t') {
			return ""
		}
	}
	return string(trimmed)
}
