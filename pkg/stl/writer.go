package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/edu3d/stlview/pkg/geometry"
)

// binaryRecord mirrors the fixed 50-byte on-disk triangle layout
type binaryRecord struct {
	Normal    [3]float32
	V1, V2, V3 [3]float32
	Attribute uint16
}

// WriteBinary encodes the model as binary STL: the model name in the
// 80-byte header, a little-endian uint32 triangle count, then one
// 50-byte record per triangle in model order.
func WriteBinary(w io.Writer, m *Model) error {
	var header [binaryHeaderSize]byte
	copy(header[:], m.Name)
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if err := binary.Write(w, binary.LittleEndian, uint32(len(m.Triangles))); err != nil {
		return fmt.Errorf("failed to write triangle count: %w", err)
	}

	for i, triangle := range m.Triangles {
		record := binaryRecord{
			Normal: packVec3(triangle.Normal),
			V1:     packVec3(triangle.V1),
			V2:     packVec3(triangle.V2),
			V3:     packVec3(triangle.V3),
		}
		if err := binary.Write(w, binary.LittleEndian, &record); err != nil {
			return fmt.Errorf("failed to write triangle %d: %w", i, err)
		}
	}

	return nil
}

// WriteASCII encodes the model as ASCII STL
func WriteASCII(w io.Writer, m *Model) error {
	bw := bufio.NewWriter(w)

	name := m.Name
	fmt.Fprintf(bw, "solid %s\n", name)
	for _, triangle := range m.Triangles {
		fmt.Fprintf(bw, "  facet normal %g %g %g\n", triangle.Normal.X, triangle.Normal.Y, triangle.Normal.Z)
		fmt.Fprintf(bw, "    outer loop\n")
		for _, vertex := range triangle.Vertices() {
			fmt.Fprintf(bw, "      vertex %g %g %g\n", vertex.X, vertex.Y, vertex.Z)
		}
		fmt.Fprintf(bw, "    endloop\n")
		fmt.Fprintf(bw, "  endfacet\n")
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write ASCII STL: %w", err)
	}
	return nil
}

func packVec3(v geometry.Vector3) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}
