package stl

import (
	"github.com/edu3d/stlview/pkg/geometry"
)

// NormalizedMesh is a render-ready model: re-centered at the origin with
// smooth per-vertex normals. VertexNormals runs parallel to Triangles,
// one unit normal per corner.
type NormalizedMesh struct {
	Triangles     []geometry.Triangle
	VertexNormals [][3]geometry.Vector3
	Bounds        geometry.BoundingBox
	Offset        geometry.Vector3
}

// Normalize prepares a parsed model for rendering. It computes the
// bounding box, translates every vertex so the box midpoint lands on the
// origin, and replaces the stored facet normals with recomputed smooth
// vertex normals, averaging the face normals of all facets sharing a
// vertex position. A model with zero triangles fails with EmptyMesh: an
// empty model is reported, not silently displayed as blank.
//
// After Normalize the returned Bounds is symmetric about the origin on
// every axis up to floating-point tolerance, which the camera framing
// relies on.
func Normalize(m *Model) (*NormalizedMesh, error) {
	if m == nil || m.TriangleCount() == 0 {
		return nil, &ParseError{Kind: EmptyMesh, Message: "model has no triangles"}
	}

	offset := m.BoundingBox().Center().Mul(-1)

	translated := make([]geometry.Triangle, len(m.Triangles))
	faceNormals := make([]geometry.Vector3, len(m.Triangles))
	bounds := geometry.NewBoundingBox()

	for i, triangle := range m.Triangles {
		moved := triangle.Translate(offset)

		// Stored normals are free-form and often zero or unnormalized;
		// the winding order is authoritative
		normal := moved.FaceNormal()
		if normal.IsZero() {
			normal = triangle.Normal.Normalize()
		}
		moved.Normal = normal

		translated[i] = moved
		faceNormals[i] = normal
		bounds.Extend(moved.V1)
		bounds.Extend(moved.V2)
		bounds.Extend(moved.V3)
	}

	return &NormalizedMesh{
		Triangles:     translated,
		VertexNormals: smoothNormals(translated, faceNormals),
		Bounds:        bounds,
		Offset:        offset,
	}, nil
}

// smoothNormals averages the face normals of all facets sharing a vertex
// position, then normalizes each sum. A corner whose accumulated normal
// cancels to zero falls back to its flat face normal.
func smoothNormals(triangles []geometry.Triangle, faceNormals []geometry.Vector3) [][3]geometry.Vector3 {
	accumulated := make(map[geometry.Vector3]geometry.Vector3, len(triangles))
	for i, triangle := range triangles {
		for _, vertex := range triangle.Vertices() {
			accumulated[vertex] = accumulated[vertex].Add(faceNormals[i])
		}
	}

	result := make([][3]geometry.Vector3, len(triangles))
	for i, triangle := range triangles {
		for j, vertex := range triangle.Vertices() {
			normal := accumulated[vertex].Normalize()
			if normal.IsZero() {
				normal = faceNormals[i]
			}
			result[i][j] = normal
		}
	}
	return result
}
