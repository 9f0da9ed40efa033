package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/edu3d/stlview/pkg/geometry"
	"github.com/edu3d/stlview/pkg/stl"
)

// meshToRaylib converts a normalized mesh to a Raylib mesh with the
// smoothed per-vertex normals and baked diffuse lighting
func meshToRaylib(mesh *stl.NormalizedMesh) rl.Mesh {
	triangleCount := len(mesh.Triangles)
	vertexCount := triangleCount * 3

	rm := rl.Mesh{
		VertexCount:   int32(vertexCount),
		TriangleCount: int32(triangleCount),
	}

	vertices := make([]float32, vertexCount*3)
	normals := make([]float32, vertexCount*3)
	texcoords := make([]float32, vertexCount*2)
	colors := make([]uint8, vertexCount*4)

	lightDir := geometry.Vector3{X: -0.5, Y: -1.0, Z: -0.5}.Normalize()

	idx := 0
	for i, triangle := range mesh.Triangles {
		corners := triangle.Vertices()
		for c := 0; c < 3; c++ {
			v := corners[c]
			n := mesh.VertexNormals[i][c]

			// Smooth shading: intensity varies per corner, rasterizer
			// interpolates across the face
			lightIntensity := math.Max(0.3, -n.Dot(lightDir))
			baseColor := 200.0
			colors[idx*4+0] = uint8(baseColor * lightIntensity * 0.5)
			colors[idx*4+1] = uint8(baseColor * lightIntensity * 0.6)
			colors[idx*4+2] = uint8(baseColor * lightIntensity)
			colors[idx*4+3] = 255

			vertices[idx*3+0] = float32(v.X)
			vertices[idx*3+1] = float32(v.Y)
			vertices[idx*3+2] = float32(v.Z)
			normals[idx*3+0] = float32(n.X)
			normals[idx*3+1] = float32(n.Y)
			normals[idx*3+2] = float32(n.Z)
			texcoords[idx*2+0] = 0
			texcoords[idx*2+1] = 0
			idx++
		}
	}

	if len(vertices) > 0 {
		rm.Vertices = &vertices[0]
		rm.Normals = &normals[0]
		rm.Texcoords = &texcoords[0]
		rm.Colors = &colors[0]
	}

	rl.UploadMesh(&rm, false)

	return rm
}
