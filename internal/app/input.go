package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// handleInput processes user input
func (app *App) handleInput() {
	// Camera view preset shortcuts
	if rl.IsKeyPressed(rl.KeyHome) {
		app.resetCameraView()
	}
	if rl.IsKeyPressed(rl.KeyT) {
		app.setCameraTopView()
	}
	if rl.IsKeyPressed(rl.KeyB) {
		app.setCameraBottomView()
	}
	if rl.IsKeyPressed(rl.KeyOne) {
		app.setCameraFrontView()
	}
	if rl.IsKeyPressed(rl.KeyTwo) {
		app.setCameraBackView()
	}
	if rl.IsKeyPressed(rl.KeyThree) {
		app.setCameraLeftView()
	}
	if rl.IsKeyPressed(rl.KeyFour) {
		app.setCameraRightView()
	}

	// Track mouse down for click vs drag detection
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		app.Interaction.mouseDownPos = rl.GetMousePosition()
		app.Interaction.mouseMoved = false
		shiftPressed := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
		app.Interaction.isPanning = shiftPressed
	}

	// Camera panning with Shift + mouse drag or middle mouse button drag
	if (rl.IsMouseButtonDown(rl.MouseLeftButton) && app.Interaction.isPanning) || rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			app.Interaction.mouseMoved = true
			app.doPan(delta)
		}
	} else if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		// Camera rotation with mouse drag
		delta := rl.GetMouseDelta()
		if math.Abs(float64(delta.X)) > 1.0 || math.Abs(float64(delta.Y)) > 1.0 {
			app.Interaction.mouseMoved = true
		}
		if delta.X != 0 || delta.Y != 0 {
			app.Camera.angleY += delta.X * 0.01
			app.Camera.angleX -= delta.Y * 0.01

			// Clamp vertical rotation
			if app.Camera.angleX > 1.5 {
				app.Camera.angleX = 1.5
			}
			if app.Camera.angleX < -1.5 {
				app.Camera.angleX = -1.5
			}
		}
	}

	// A plain click toggles auto-rotation; drags don't count
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		currentPos := rl.GetMousePosition()
		dragDistance := rl.Vector2Distance(app.Interaction.mouseDownPos, currentPos)
		if !app.Interaction.mouseMoved && !app.Interaction.isPanning && dragDistance < 5.0 {
			app.ctrl.ToggleSpin()
		}
		app.Interaction.isPanning = false
	}

	// Zoom with mouse wheel
	wheel := rl.GetMouseWheelMove()
	if wheel != 0 {
		app.Camera.distance *= (1.0 - wheel*0.03)
		if app.Camera.distance < 1.0 {
			app.Camera.distance = 1.0
		}
	}

	// Keyboard controls
	if rl.IsKeyPressed(rl.KeyW) {
		app.View.showWireframe = !app.View.showWireframe
	}
	if rl.IsKeyPressed(rl.KeyF) {
		app.View.showFilled = !app.View.showFilled
	}
	if rl.IsKeyPressed(rl.KeyI) {
		app.View.showInfo = !app.View.showInfo
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		app.ctrl.ToggleSpin()
	}
}
