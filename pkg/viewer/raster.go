package viewer

import (
	"image"
	"image/color"
	"math"
)

// shadedVertex is a screen-space triangle corner carrying depth and a
// light intensity for Gouraud interpolation
type shadedVertex struct {
	X, Y, Z float64
	Shade   float64
}

// fillTriangleShaded rasterizes a triangle scanline by scanline with
// depth testing, interpolating the per-vertex shade across the face
func fillTriangleShaded(img *image.RGBA, zbuffer []float64, v [3]shadedVertex, base color.RGBA) {
	// Sort vertices by Y coordinate (top to bottom)
	if v[0].Y > v[1].Y {
		v[0], v[1] = v[1], v[0]
	}
	if v[1].Y > v[2].Y {
		v[1], v[2] = v[2], v[1]
	}
	if v[0].Y > v[1].Y {
		v[0], v[1] = v[1], v[0]
	}

	bounds := img.Bounds()
	width := bounds.Max.X

	for y := int(math.Max(0, v[0].Y)); y <= int(math.Min(float64(bounds.Max.Y-1), v[2].Y)); y++ {
		fy := float64(y)

		// Each edge runs top-down after the sort above
		edges := [3][2]shadedVertex{{v[0], v[1]}, {v[1], v[2]}, {v[0], v[2]}}
		var start, end shadedVertex
		found := 0
		for _, edge := range edges {
			a, b := edge[0], edge[1]
			if a.Y == b.Y || fy < a.Y || fy > b.Y {
				continue
			}
			t := (fy - a.Y) / (b.Y - a.Y)
			p := shadedVertex{
				X:     a.X + t*(b.X-a.X),
				Y:     fy,
				Z:     a.Z + t*(b.Z-a.Z),
				Shade: a.Shade + t*(b.Shade-a.Shade),
			}
			if found == 0 {
				start = p
			} else {
				end = p
			}
			found++
		}
		if found < 2 {
			continue
		}
		if start.X > end.X {
			start, end = end, start
		}

		xStart := int(math.Max(0, start.X))
		xEnd := int(math.Min(float64(width-1), end.X))

		for x := xStart; x <= xEnd; x++ {
			t := 0.0
			if end.X != start.X {
				t = (float64(x) - start.X) / (end.X - start.X)
			}

			z := start.Z + t*(end.Z-start.Z)
			idx := y*width + x
			if idx < 0 || idx >= len(zbuffer) || z >= zbuffer[idx] {
				continue
			}
			zbuffer[idx] = z

			shade := clamp(start.Shade+t*(end.Shade-start.Shade), 0, 1)
			img.SetRGBA(x, y, shadeColor(base, shade))
		}
	}
}

// shadeColor scales the base color by a light intensity, keeping an
// ambient floor so back faces stay visible
func shadeColor(base color.RGBA, shade float64) color.RGBA {
	const ambient = 0.25
	intensity := ambient + (1-ambient)*shade
	return color.RGBA{
		R: uint8(float64(base.R) * intensity),
		G: uint8(float64(base.G) * intensity),
		B: uint8(float64(base.B) * intensity),
		A: base.A,
	}
}

func clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// drawLine draws a line on an image using Bresenham's algorithm
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	bounds := img.Bounds()

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	var sx, sy int
	if x1 < x2 {
		sx = 1
	} else {
		sx = -1
	}
	if y1 < y2 {
		sy = 1
	} else {
		sy = -1
	}

	err := dx - dy

	for {
		if x1 >= 0 && x1 < bounds.Max.X && y1 >= 0 && y1 < bounds.Max.Y {
			img.SetRGBA(x1, y1, col)
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
