package analysis

import (
	"fmt"
	"math"

	"github.com/edu3d/stlview/pkg/geometry"
	"github.com/edu3d/stlview/pkg/stl"
)

// Summary contains various measurements of an STL model
type Summary struct {
	Name          string
	Format        stl.Format
	TriangleCount int
	EdgeCount     int
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	SurfaceArea   float64
	Volume        float64
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
}

// Summarize computes geometric measurements for a parsed model.
// Volume is the enclosed volume assuming a closed, consistently
// wound mesh; for open meshes the value is approximate.
func Summarize(model *stl.Model) *Summary {
	s := &Summary{
		Name:          model.Name,
		Format:        model.Format,
		TriangleCount: model.TriangleCount(),
		BoundingBox:   model.BoundingBox(),
		SurfaceArea:   model.SurfaceArea(),
	}
	s.Dimensions = s.BoundingBox.Size()
	s.Volume = meshVolume(model)

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0
	for _, triangle := range model.Triangles {
		for _, length := range triangle.EdgeLengths() {
			totalLength += length
			if length < minLength {
				minLength = length
			}
			if length > maxLength {
				maxLength = length
			}
		}
	}

	s.EdgeCount = 3 * s.TriangleCount
	if s.EdgeCount > 0 {
		s.MinEdgeLength = minLength
		s.MaxEdgeLength = maxLength
		s.AvgEdgeLength = totalLength / float64(s.EdgeCount)
	}

	return s
}

// meshVolume sums signed tetrahedron volumes against the origin.
func meshVolume(model *stl.Model) float64 {
	volume := 0.0
	for _, t := range model.Triangles {
		volume += t.V1.Dot(t.V2.Cross(t.V3)) / 6.0
	}
	return math.Abs(volume)
}

// FormatVector formats a vector for display with 3 decimal places
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}

// FormatLength formats a length for display with 3 decimal places
func FormatLength(length float64) string {
	return fmt.Sprintf("%.3f", length)
}
