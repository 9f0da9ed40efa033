package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/edu3d/stlview/pkg/viewer"
)

// Isometric default angles, matching the computed camera frame whose
// position has three equal components
const (
	defaultAngleX = float32(0.61547970867) // asin(1/sqrt(3))
	defaultAngleY = float32(math.Pi / 4)
)

// frameCamera installs the frame computed for a freshly loaded mesh.
// The mesh is centered at the origin so the orbit target starts there.
func (app *App) frameCamera(frame viewer.CameraFrame) {
	// Spherical radius of the isometric position (d, d, d)
	dist := float32(frame.Distance * math.Sqrt(3))

	app.Camera.distance = dist
	app.Camera.defaultDist = dist
	app.Camera.angleX = defaultAngleX
	app.Camera.angleY = defaultAngleY
	app.Camera.target = rl.Vector3{}

	app.Camera.camera = rl.Camera3D{
		Position: rl.Vector3{
			X: float32(frame.Position.X),
			Y: float32(frame.Position.Y),
			Z: float32(frame.Position.Z),
		},
		Target:     app.Camera.target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45.0,
		Projection: rl.CameraPerspective,
	}
}

// resetCameraView restores the default framing for the current mesh
func (app *App) resetCameraView() {
	app.Camera.distance = app.Camera.defaultDist
	app.Camera.angleX = defaultAngleX
	app.Camera.angleY = defaultAngleY
	app.Camera.target = rl.Vector3{}
}

// setCameraTopView looks straight down the Y axis
func (app *App) setCameraTopView() {
	app.Camera.angleX = math.Pi/2 - 0.001
	app.Camera.angleY = 0
	app.Camera.target = rl.Vector3{}
}

// setCameraBottomView looks straight up
func (app *App) setCameraBottomView() {
	app.Camera.angleX = -math.Pi/2 + 0.001
	app.Camera.angleY = 0
	app.Camera.target = rl.Vector3{}
}

// setCameraFrontView looks from the front (along -Z axis)
func (app *App) setCameraFrontView() {
	app.Camera.angleX = 0
	app.Camera.angleY = 0
	app.Camera.target = rl.Vector3{}
}

// setCameraBackView looks from the back (along +Z axis)
func (app *App) setCameraBackView() {
	app.Camera.angleX = 0
	app.Camera.angleY = math.Pi
	app.Camera.target = rl.Vector3{}
}

// setCameraLeftView looks from the left (along +X axis)
func (app *App) setCameraLeftView() {
	app.Camera.angleX = 0
	app.Camera.angleY = -math.Pi / 2
	app.Camera.target = rl.Vector3{}
}

// setCameraRightView looks from the right (along -X axis)
func (app *App) setCameraRightView() {
	app.Camera.angleX = 0
	app.Camera.angleY = math.Pi / 2
	app.Camera.target = rl.Vector3{}
}

// updateCamera updates camera position based on angles
func (app *App) updateCamera() {
	x := app.Camera.distance * float32(math.Cos(float64(app.Camera.angleX))) * float32(math.Sin(float64(app.Camera.angleY)))
	y := app.Camera.distance * float32(math.Sin(float64(app.Camera.angleX)))
	z := app.Camera.distance * float32(math.Cos(float64(app.Camera.angleX))) * float32(math.Cos(float64(app.Camera.angleY)))

	app.Camera.camera.Position = rl.Vector3{
		X: app.Camera.target.X + x,
		Y: app.Camera.target.Y + y,
		Z: app.Camera.target.Z + z,
	}
	app.Camera.camera.Target = app.Camera.target
}

// doPan performs camera panning based on mouse delta
func (app *App) doPan(delta rl.Vector2) {
	forward := rl.Vector3Normalize(rl.Vector3Subtract(app.Camera.target, app.Camera.camera.Position))
	right := rl.Vector3Normalize(rl.Vector3CrossProduct(forward, app.Camera.camera.Up))
	up := rl.Vector3Normalize(rl.Vector3CrossProduct(right, forward))

	// Pan speed based on distance from target
	panSpeed := app.Camera.distance * 0.001

	rightMove := rl.Vector3Scale(right, -delta.X*panSpeed)
	upMove := rl.Vector3Scale(up, delta.Y*panSpeed)

	app.Camera.target = rl.Vector3Add(app.Camera.target, rightMove)
	app.Camera.target = rl.Vector3Add(app.Camera.target, upMove)
}
