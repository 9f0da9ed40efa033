package stl

import (
	"errors"
	"math"
	"testing"

	"github.com/edu3d/stlview/pkg/geometry"
)

// quadAt builds two triangles forming an axis-aligned unit quad in the
// XY plane at height z, offset by (ox, oy)
func quadAt(model *Model, ox, oy, z float64) {
	a := geometry.NewVector3(ox, oy, z)
	b := geometry.NewVector3(ox+1, oy, z)
	c := geometry.NewVector3(ox+1, oy+1, z)
	d := geometry.NewVector3(ox, oy+1, z)
	model.AddTriangle(geometry.NewTriangle(geometry.Vector3{}, a, b, c))
	model.AddTriangle(geometry.NewTriangle(geometry.Vector3{}, a, c, d))
}

func TestNormalizeEmptyMesh(t *testing.T) {
	_, err := Normalize(NewModel("empty"))

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	if parseErr.Kind != EmptyMesh {
		t.Errorf("Kind failed: expected EmptyMesh, got %v", parseErr.Kind)
	}
}

func TestNormalizeCentersGeometry(t *testing.T) {
	model := NewModel("offset quad")
	quadAt(model, 10, 20, 5)

	normalized, err := Normalize(model)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	expectedOffset := geometry.NewVector3(-10.5, -20.5, -5)
	if normalized.Offset.Distance(expectedOffset) > 1e-10 {
		t.Errorf("Offset failed: expected %v, got %v", expectedOffset, normalized.Offset)
	}

	center := normalized.Bounds.Center()
	if center.Length() > 1e-10 {
		t.Errorf("Bounds not centered: center is %v", center)
	}
}

func TestNormalizeBoundsSymmetric(t *testing.T) {
	model := NewModel("asymmetric input")
	quadAt(model, 3, -7, 2)
	quadAt(model, 4, -6, 9)

	normalized, err := Normalize(model)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	bounds := normalized.Bounds
	mins := [3]float64{bounds.Min.X, bounds.Min.Y, bounds.Min.Z}
	maxs := [3]float64{bounds.Max.X, bounds.Max.Y, bounds.Max.Z}
	for axis := 0; axis < 3; axis++ {
		scale := math.Max(math.Abs(mins[axis]), math.Abs(maxs[axis]))
		if scale == 0 {
			continue
		}
		if math.Abs(mins[axis]+maxs[axis])/scale > 1e-5 {
			t.Errorf("axis %d not symmetric: min %v, max %v", axis, mins[axis], maxs[axis])
		}
	}
}

func TestNormalizeVertexNormalsUnitLength(t *testing.T) {
	model := NewModel("quad")
	quadAt(model, 0, 0, 0)

	normalized, err := Normalize(model)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	if len(normalized.VertexNormals) != len(normalized.Triangles) {
		t.Fatalf("VertexNormals length failed: expected %d, got %d",
			len(normalized.Triangles), len(normalized.VertexNormals))
	}
	for i, corners := range normalized.VertexNormals {
		for j, normal := range corners {
			if math.Abs(normal.Length()-1.0) > 1e-10 {
				t.Errorf("normal %d/%d not unit length: %v", i, j, normal)
			}
		}
	}
}

func TestNormalizeSharedVertexNormalsAgree(t *testing.T) {
	model := NewModel("quad")
	quadAt(model, 0, 0, 0)

	normalized, err := Normalize(model)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	// Both triangles lie in the same plane, so every corner of the quad
	// must end up with the same averaged normal
	expected := geometry.NewVector3(0, 0, 1)
	for i, corners := range normalized.VertexNormals {
		for j, normal := range corners {
			if normal.Distance(expected) > 1e-10 {
				t.Errorf("normal %d/%d failed: expected %v, got %v", i, j, expected, normal)
			}
		}
	}
}

func TestNormalizeRecomputesFlatNormals(t *testing.T) {
	// Stored normals are garbage; winding order is authoritative
	model := NewModel("bad normals")
	model.AddTriangle(geometry.NewTriangle(
		geometry.NewVector3(9, 9, 9),
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(1, 0, 0),
		geometry.NewVector3(0, 1, 0),
	))

	normalized, err := Normalize(model)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	expected := geometry.NewVector3(0, 0, 1)
	if normalized.Triangles[0].Normal.Distance(expected) > 1e-10 {
		t.Errorf("Normal failed: expected %v, got %v", expected, normalized.Triangles[0].Normal)
	}
}

func TestNormalizeDegenerateTriangleFallsBack(t *testing.T) {
	// Collinear vertices have no winding normal; the stored one is kept
	model := NewModel("degenerate")
	model.AddTriangle(geometry.NewTriangle(
		geometry.NewVector3(0, 0, 2),
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(1, 1, 1),
		geometry.NewVector3(2, 2, 2),
	))

	normalized, err := Normalize(model)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	expected := geometry.NewVector3(0, 0, 1)
	if normalized.Triangles[0].Normal.Distance(expected) > 1e-10 {
		t.Errorf("Normal failed: expected stored normal %v, got %v", expected, normalized.Triangles[0].Normal)
	}
}
