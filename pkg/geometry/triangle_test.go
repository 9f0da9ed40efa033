package geometry

import (
	"math"
	"testing"
)

func TestTriangleArea(t *testing.T) {
	// Right triangle with legs 3 and 4
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 4, 0),
	)

	area := tri.Area()
	expected := 6.0 // (3 * 4) / 2 = 6

	if math.Abs(area-expected) > 1e-10 {
		t.Errorf("Area failed: expected %v, got %v", expected, area)
	}
}

func TestTriangleFaceNormal(t *testing.T) {
	tri := NewTriangle(
		Vector3{},
		NewVector3(0, 0, 0),
		NewVector3(1, 0, 0),
		NewVector3(0, 1, 0),
	)

	normal := tri.FaceNormal()
	expected := NewVector3(0, 0, 1)

	if normal.Distance(expected) > 1e-10 {
		t.Errorf("FaceNormal failed: expected %v, got %v", expected, normal)
	}
}

func TestTriangleFaceNormalDegenerate(t *testing.T) {
	// All three vertices collinear
	tri := NewTriangle(
		Vector3{},
		NewVector3(0, 0, 0),
		NewVector3(1, 1, 1),
		NewVector3(2, 2, 2),
	)

	if !tri.FaceNormal().IsZero() {
		t.Errorf("FaceNormal failed: degenerate triangle should yield zero, got %v", tri.FaceNormal())
	}
}

func TestTriangleEdgeLengths(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 4, 0),
	)

	lengths := tri.EdgeLengths()

	// Pythagorean triple: 3, 5, 4
	if math.Abs(lengths[0]-3.0) > 1e-10 {
		t.Errorf("Edge 0 length failed: expected 3.0, got %v", lengths[0])
	}
	if math.Abs(lengths[1]-5.0) > 1e-10 {
		t.Errorf("Edge 1 length failed: expected 5.0, got %v", lengths[1])
	}
	if math.Abs(lengths[2]-4.0) > 1e-10 {
		t.Errorf("Edge 2 length failed: expected 4.0, got %v", lengths[2])
	}
}

func TestTrianglePerimeter(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 4, 0),
	)

	perimeter := tri.Perimeter()
	expected := 12.0 // 3 + 4 + 5 = 12

	if math.Abs(perimeter-expected) > 1e-10 {
		t.Errorf("Perimeter failed: expected %v, got %v", expected, perimeter)
	}
}

func TestTriangleCenter(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 3, 0),
	)

	center := tri.Center()
	expected := NewVector3(1, 1, 0)

	if center != expected {
		t.Errorf("Center failed: expected %v, got %v", expected, center)
	}
}

func TestTriangleTranslate(t *testing.T) {
	tri := NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(1, 1, 1),
		NewVector3(2, 1, 1),
		NewVector3(1, 2, 1),
	)

	moved := tri.Translate(NewVector3(-1, -1, -1))

	if moved.V1 != NewVector3(0, 0, 0) || moved.V2 != NewVector3(1, 0, 0) || moved.V3 != NewVector3(0, 1, 0) {
		t.Errorf("Translate failed: got %v %v %v", moved.V1, moved.V2, moved.V3)
	}
	if moved.Normal != tri.Normal {
		t.Errorf("Translate failed: normal should be unchanged, got %v", moved.Normal)
	}
}
