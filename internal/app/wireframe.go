package app

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// drawWireframe renders the mesh edges using thin cylinders for better
// visibility and anti-aliasing. The spin angle must match the one used
// for the filled mesh so both layers stay aligned.
func (app *App) drawWireframe(spinAngle float32) {
	mesh := app.ctrl.Mesh()
	if mesh == nil {
		return
	}

	wireframeColor := rl.NewColor(100, 100, 100, 200)
	wireframeThickness := app.Camera.distance * 0.0001
	cylinderSegments := int32(8)

	sin := float32(math.Sin(float64(spinAngle)))
	cos := float32(math.Cos(float64(spinAngle)))
	spun := func(x, y, z float64) rl.Vector3 {
		fx, fz := float32(x), float32(z)
		return rl.Vector3{
			X: fx*cos + fz*sin,
			Y: float32(y),
			Z: -fx*sin + fz*cos,
		}
	}

	// Track drawn edges to avoid duplicates
	drawnEdges := make(map[string]bool)

	for _, triangle := range mesh.Triangles {
		v1 := spun(triangle.V1.X, triangle.V1.Y, triangle.V1.Z)
		v2 := spun(triangle.V2.X, triangle.V2.Y, triangle.V2.Z)
		v3 := spun(triangle.V3.X, triangle.V3.Y, triangle.V3.Z)

		edges := [][2]rl.Vector3{{v1, v2}, {v2, v3}, {v3, v1}}
		for _, edge := range edges {
			edgeKey := fmt.Sprintf("%.6f,%.6f,%.6f-%.6f,%.6f,%.6f", edge[0].X, edge[0].Y, edge[0].Z, edge[1].X, edge[1].Y, edge[1].Z)
			if !drawnEdges[edgeKey] {
				drawnEdges[edgeKey] = true
				rl.DrawCylinderEx(edge[0], edge[1], wireframeThickness, wireframeThickness, cylinderSegments, wireframeColor)
			}
		}
	}
}
