package viewer

import (
	"math"

	"github.com/edu3d/stlview/pkg/geometry"
)

const (
	// framingMultiplier scales the largest model dimension into the
	// initial camera distance, leaving margin around the model at the
	// default field of view
	framingMultiplier = 2.0

	// MinFrameDistance keeps the camera off the target when the model
	// has no extent to frame (a single point or fully degenerate mesh)
	MinFrameDistance = 1.0

	minZoomDistance = 0.1
)

// CameraFrame is the initial viewpoint derived from a model's bounds.
// Target is always the origin, matching the normalizer's centering.
type CameraFrame struct {
	Position geometry.Vector3
	Target   geometry.Vector3
	Distance float64
}

// FrameBounds derives the camera frame for an origin-centered bounding
// box: distance is twice the largest dimension and the position sits at
// (distance, distance, distance), an isometric-style viewpoint that
// shows all three dimensions of the model at once.
func FrameBounds(bounds geometry.BoundingBox) CameraFrame {
	distance := bounds.MaxDimension() * framingMultiplier
	if distance <= 0 {
		distance = MinFrameDistance
	}
	return CameraFrame{
		Position: geometry.NewVector3(distance, distance, distance),
		Target:   geometry.Vector3{},
		Distance: distance,
	}
}

// Camera is the interactive viewpoint over a framed model. Orbit and
// zoom mutate spherical coordinates around Target; Reset returns to the
// frame installed when the current model was loaded, not to a global
// default.
type Camera struct {
	Position  geometry.Vector3
	Target    geometry.Vector3
	Up        geometry.Vector3
	FOV       float64 // field of view in radians
	Distance  float64
	RotationX float64 // rotation around X axis (vertical)
	RotationY float64 // rotation around Y axis (horizontal)

	frame CameraFrame
}

// NewCamera creates a camera snapped to the given frame
func NewCamera(frame CameraFrame) *Camera {
	c := &Camera{
		Up:  geometry.NewVector3(0, 1, 0),
		FOV: math.Pi / 4, // 45 degrees
	}
	c.SetFrame(frame)
	return c
}

// SetFrame installs frame as the new reset target and snaps to it.
// Called once per model load so that reset-view always restores the
// framing computed for the model currently shown.
func (c *Camera) SetFrame(frame CameraFrame) {
	c.frame = frame
	c.Reset()
}

// Frame returns the reset frame for the current model
func (c *Camera) Frame() CameraFrame {
	return c.frame
}

// Reset restores the exact frame for the current model
func (c *Camera) Reset() {
	c.Target = c.frame.Target
	c.Position = c.frame.Position
	c.Distance = c.frame.Position.Sub(c.frame.Target).Length()

	// Recover the spherical angles that reproduce the frame position,
	// so subsequent orbiting continues from the framed viewpoint
	relative := c.frame.Position.Sub(c.frame.Target)
	if c.Distance > 0 {
		c.RotationX = math.Asin(relative.Y / c.Distance)
		c.RotationY = math.Atan2(relative.X, relative.Z)
	} else {
		c.RotationX = 0
		c.RotationY = 0
	}
}

// UpdatePosition recomputes the position from the spherical coordinates
func (c *Camera) UpdatePosition() {
	x := c.Distance * math.Cos(c.RotationX) * math.Sin(c.RotationY)
	y := c.Distance * math.Sin(c.RotationX)
	z := c.Distance * math.Cos(c.RotationX) * math.Cos(c.RotationY)

	c.Position = c.Target.Add(geometry.NewVector3(x, y, z))
}

// Rotate orbits the camera by the given angles
func (c *Camera) Rotate(deltaX, deltaY float64) {
	c.RotationX += deltaX
	c.RotationY += deltaY

	// Clamp X rotation to prevent gimbal lock
	maxAngle := math.Pi/2 - 0.1
	if c.RotationX > maxAngle {
		c.RotationX = maxAngle
	}
	if c.RotationX < -maxAngle {
		c.RotationX = -maxAngle
	}

	c.UpdatePosition()
}

// Zoom changes the camera distance by a relative delta
func (c *Camera) Zoom(delta float64) {
	c.ZoomFactor(1.0 + delta)
}

// ZoomFactor scales the camera distance without changing the target
func (c *Camera) ZoomFactor(factor float64) {
	c.Distance *= factor
	if c.Distance < minZoomDistance {
		c.Distance = minZoomDistance
	}
	c.UpdatePosition()
}

// Pan shifts the orbit target in the camera plane. The pan speed scales
// with distance so the motion feels uniform at any zoom level.
func (c *Camera) Pan(deltaX, deltaY float64) {
	forward := c.Target.Sub(c.Position).Normalize()
	right := forward.Cross(c.Up).Normalize()
	up := right.Cross(forward).Normalize()

	panSpeed := c.Distance * 0.001
	c.Target = c.Target.Add(right.Mul(-deltaX * panSpeed))
	c.Target = c.Target.Add(up.Mul(deltaY * panSpeed))

	c.UpdatePosition()
}

// Project projects a 3D point to 2D screen coordinates, returning the
// screen position and the camera-space depth
func (c *Camera) Project(point geometry.Vector3, width, height float64) (float64, float64, float64) {
	forward := c.Target.Sub(c.Position).Normalize()
	right := forward.Cross(c.Up).Normalize()
	up := right.Cross(forward).Normalize()

	relative := point.Sub(c.Position)
	x := relative.Dot(right)
	y := relative.Dot(up)
	z := relative.Dot(forward)

	// Points at or behind the eye would blow up the perspective divide
	if z <= 0.01 {
		z = 0.01
	}

	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)

	screenX := (x/(z*fovScale*aspect))*(width/2) + (width / 2)
	screenY := (-y/(z*fovScale))*(height/2) + (height / 2)

	return screenX, screenY, z
}

// RotateY rotates a point around the Y axis, used to apply the
// auto-rotation angle to model geometry before projection
func RotateY(point geometry.Vector3, angle float64) geometry.Vector3 {
	sin, cos := math.Sincos(angle)
	return geometry.Vector3{
		X: point.X*cos + point.Z*sin,
		Y: point.Y,
		Z: -point.X*sin + point.Z*cos,
	}
}
