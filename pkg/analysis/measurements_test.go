package analysis

import (
	"math"
	"testing"

	"github.com/edu3d/stlview/pkg/geometry"
	"github.com/edu3d/stlview/pkg/stl"
)

// unitCube builds a closed unit cube from 12 triangles with
// outward-facing winding.
func unitCube() *stl.Model {
	v := func(x, y, z float64) geometry.Vector3 {
		return geometry.Vector3{X: x, Y: y, Z: z}
	}
	quads := [][4]geometry.Vector3{
		{v(0, 0, 0), v(0, 1, 0), v(1, 1, 0), v(1, 0, 0)}, // bottom
		{v(0, 0, 1), v(1, 0, 1), v(1, 1, 1), v(0, 1, 1)}, // top
		{v(0, 0, 0), v(1, 0, 0), v(1, 0, 1), v(0, 0, 1)}, // front
		{v(0, 1, 0), v(0, 1, 1), v(1, 1, 1), v(1, 1, 0)}, // back
		{v(0, 0, 0), v(0, 0, 1), v(0, 1, 1), v(0, 1, 0)}, // left
		{v(1, 0, 0), v(1, 1, 0), v(1, 1, 1), v(1, 0, 1)}, // right
	}

	model := stl.NewModel("cube")
	for _, q := range quads {
		model.AddTriangle(geometry.Triangle{V1: q[0], V2: q[1], V3: q[2]})
		model.AddTriangle(geometry.Triangle{V1: q[0], V2: q[2], V3: q[3]})
	}
	return model
}

func TestSummarizeUnitCube(t *testing.T) {
	s := Summarize(unitCube())

	if s.TriangleCount != 12 {
		t.Errorf("TriangleCount failed: expected 12, got %d", s.TriangleCount)
	}
	if s.EdgeCount != 36 {
		t.Errorf("EdgeCount failed: expected 36, got %d", s.EdgeCount)
	}
	if math.Abs(s.SurfaceArea-6.0) > 1e-10 {
		t.Errorf("SurfaceArea failed: expected 6.0, got %f", s.SurfaceArea)
	}
	if math.Abs(s.Volume-1.0) > 1e-10 {
		t.Errorf("Volume failed: expected 1.0, got %f", s.Volume)
	}

	size := s.Dimensions
	if size.X != 1 || size.Y != 1 || size.Z != 1 {
		t.Errorf("Dimensions failed: expected (1,1,1), got %v", size)
	}
	if math.Abs(s.MinEdgeLength-1.0) > 1e-10 {
		t.Errorf("MinEdgeLength failed: expected 1.0, got %f", s.MinEdgeLength)
	}
	if math.Abs(s.MaxEdgeLength-math.Sqrt2) > 1e-10 {
		t.Errorf("MaxEdgeLength failed: expected sqrt(2), got %f", s.MaxEdgeLength)
	}
}

func TestSummarizeEmptyModel(t *testing.T) {
	s := Summarize(stl.NewModel("empty"))

	if s.EdgeCount != 0 {
		t.Errorf("EdgeCount failed: expected 0, got %d", s.EdgeCount)
	}
	if s.MinEdgeLength != 0 || s.MaxEdgeLength != 0 || s.AvgEdgeLength != 0 {
		t.Errorf("edge lengths for empty model should be zero, got %f/%f/%f",
			s.MinEdgeLength, s.MaxEdgeLength, s.AvgEdgeLength)
	}
	if s.Volume != 0 {
		t.Errorf("Volume failed: expected 0, got %f", s.Volume)
	}
}

func TestFormatVector(t *testing.T) {
	got := FormatVector(geometry.Vector3{X: 1.23456, Y: -2, Z: 0.5})
	want := "(1.235, -2.000, 0.500)"
	if got != want {
		t.Errorf("FormatVector failed: expected %s, got %s", want, got)
	}
}
