package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/edu3d/stlview/pkg/analysis"
	"github.com/edu3d/stlview/pkg/diag"
	"github.com/edu3d/stlview/pkg/loader"
	"github.com/edu3d/stlview/pkg/stl"
	"github.com/edu3d/stlview/pkg/viewer"
	"github.com/edu3d/stlview/pkg/watcher"
)

type App struct {
	ctrl        *viewer.Controller
	Camera      CameraState
	Model       ModelData
	View        ViewSettings
	Interaction InteractionState
	FileWatch   FileWatchState
}

// Run opens the desktop viewport on the given model reference (file
// path or URL) and blocks until the window closes.
func Run(ref string, sink diag.Sink) error {
	ctrl := viewer.NewController(loader.New(sink), sink)

	app := &App{
		ctrl: ctrl,
		View: ViewSettings{
			showWireframe: true,
			showFilled:    true,
			showInfo:      true,
		},
		FileWatch: FileWatchState{sourceFile: ref},
	}

	// URLs cannot be watched for changes, only local files
	if !strings.HasPrefix(ref, "http://") && !strings.HasPrefix(ref, "https://") {
		if err := app.setupFileWatcher(); err != nil {
			fmt.Printf("Warning: file watching unavailable: %v\n", err)
		} else {
			defer app.FileWatch.watcher.Close()
		}
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(1400, 900, "stlview")
	rl.SetTargetFPS(60)

	ctrl.SetOnReady(app.onMeshReady)
	ctrl.SetOnError(func(err error) {
		fmt.Printf("Error loading model: %v\n", err)
	})
	ctrl.Load(context.Background(), ref)

	for {
		if rl.WindowShouldClose() && !rl.IsKeyPressed(rl.KeyEscape) {
			break
		}
		ctrlPressed := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
		if ctrlPressed && rl.IsKeyPressed(rl.KeyC) {
			break
		}

		app.pollFileChanges()
		ctrl.Tick()

		app.handleInput()
		app.updateCamera()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(15, 18, 25, 255))

		rl.BeginMode3D(app.Camera.camera)
		if app.Model.meshLoaded {
			transform := rl.MatrixRotateY(float32(ctrl.SpinAngle()))
			if app.View.showFilled {
				rl.DrawMesh(app.Model.mesh, app.Model.material, transform)
			}
			if app.View.showWireframe {
				app.drawWireframe(float32(ctrl.SpinAngle()))
			}
		}
		rl.EndMode3D()

		app.drawUI()

		rl.EndDrawing()
	}

	if app.Model.meshLoaded {
		rl.UnloadMesh(&app.Model.mesh)
	}
	rl.CloseWindow()
	return nil
}

// onMeshReady swaps in the uploaded mesh and frames the camera. Runs
// inside Tick on the render thread, which raylib requires for GPU
// uploads.
func (app *App) onMeshReady(mesh *stl.NormalizedMesh, frame viewer.CameraFrame) {
	if app.Model.meshLoaded {
		rl.UnloadMesh(&app.Model.mesh)
	}
	app.Model.mesh = meshToRaylib(mesh)
	app.Model.material = rl.LoadMaterialDefault()
	app.Model.meshLoaded = true
	app.Model.size = float32(mesh.Bounds.MaxDimension())
	if model := app.ctrl.Model(); model != nil {
		app.Model.summary = analysis.Summarize(model)
	}
	app.frameCamera(frame)
}

func (app *App) pollFileChanges() {
	if app.FileWatch.watcher == nil {
		return
	}
	select {
	case changed := <-app.FileWatch.watcher.Events():
		fmt.Printf("File changed: %s\n", changed)
		app.ctrl.Load(context.Background(), app.FileWatch.sourceFile)
	default:
	}
}

func (app *App) setupFileWatcher() error {
	w, err := watcher.New(500 * time.Millisecond)
	if err != nil {
		return err
	}
	if err := w.Add(app.FileWatch.sourceFile); err != nil {
		w.Close()
		return err
	}
	app.FileWatch.watcher = w
	fmt.Printf("Watching file for changes: %s\n", app.FileWatch.sourceFile)
	return nil
}
