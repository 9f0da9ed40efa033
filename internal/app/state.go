package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/edu3d/stlview/pkg/analysis"
	"github.com/edu3d/stlview/pkg/watcher"
)

// CameraState holds all camera-related state
type CameraState struct {
	camera      rl.Camera3D
	distance    float32
	angleX      float32
	angleY      float32
	target      rl.Vector3
	defaultDist float32 // For reset (angles reset to the isometric defaults)
}

// ModelData holds the GPU-side mesh and its display metadata
type ModelData struct {
	mesh       rl.Mesh
	material   rl.Material
	meshLoaded bool
	size       float32 // Max dimension, for pan and wireframe scaling
	summary    *analysis.Summary
}

// ViewSettings holds display settings
type ViewSettings struct {
	showWireframe bool
	showFilled    bool
	showInfo      bool
}

// InteractionState holds mouse state
type InteractionState struct {
	mouseDownPos rl.Vector2
	mouseMoved   bool
	isPanning    bool
}

// FileWatchState holds file watching and reload state
type FileWatchState struct {
	sourceFile string
	watcher    *watcher.Watcher
}
