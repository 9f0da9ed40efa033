package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/edu3d/stlview/pkg/analysis"
	"github.com/edu3d/stlview/pkg/diag"
	"github.com/edu3d/stlview/pkg/loader"
	"github.com/edu3d/stlview/pkg/stl"
	"github.com/edu3d/stlview/pkg/viewer"
)

const tickInterval = time.Second / 60

type App struct {
	window    fyne.Window
	ctrl      *viewer.Controller
	renderer  *viewer.ModelRenderer
	infoLabel *widget.Label
}

func main() {
	a := fyneapp.New()
	w := a.NewWindow("stlview")

	sink := diag.NewLogSink(log.New(os.Stderr, "", log.LstdFlags))
	ctrl := viewer.NewController(loader.New(sink), sink)

	gui := &App{
		window:    w,
		ctrl:      ctrl,
		renderer:  viewer.NewModelRenderer(ctrl),
		infoLabel: widget.NewLabel("No model loaded"),
	}
	gui.infoLabel.Wrapping = fyne.TextWrapWord

	ctrl.SetOnReady(func(mesh *stl.NormalizedMesh, frame viewer.CameraFrame) {
		gui.updateInfo()
	})
	ctrl.SetOnError(func(err error) {
		dialog.ShowError(fmt.Errorf("failed to load model: %w", err), w)
		gui.updateInfo()
	})

	gui.setupUI()

	if len(os.Args) > 1 {
		ctrl.Load(context.Background(), os.Args[1])
	}

	// Drive the controller on the UI thread: finished loads are
	// applied and the spin angle advances between frames
	go func() {
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()
		for range ticker.C {
			fyne.Do(func() {
				if ctrl.Tick() {
					gui.renderer.Redraw()
				}
			})
		}
	}()

	w.Resize(fyne.NewSize(1200, 800))
	w.ShowAndRun()
}

func (a *App) setupUI() {
	openButton := widget.NewButton("Open STL File", func() {
		a.showFileDialog()
	})

	resetButton := widget.NewButton("Reset View", func() {
		a.ctrl.ResetView()
		a.renderer.Redraw()
	})

	spinCheck := widget.NewCheck("Auto-rotate", func(checked bool) {
		if a.ctrl.Spinning() != checked {
			a.ctrl.ToggleSpin()
		}
	})

	wireframeCheck := widget.NewCheck("Wireframe", func(checked bool) {
		a.renderer.SetWireframe(checked)
	})

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Drag to rotate the view\n" +
			"• Scroll to zoom in/out\n" +
			"• Tap the model to toggle rotation",
	)
	instructions.Wrapping = fyne.TextWrapWord

	infoPanel := container.NewVBox(
		widget.NewLabel("Model Information:"),
		widget.NewSeparator(),
		a.infoLabel,
		widget.NewSeparator(),
		widget.NewLabel("Display Options:"),
		spinCheck,
		wireframeCheck,
		resetButton,
		widget.NewSeparator(),
		instructions,
		widget.NewSeparator(),
		openButton,
	)

	infoScroll := container.NewVScroll(infoPanel)
	infoScroll.SetMinSize(fyne.NewSize(300, 0))

	content := container.NewBorder(
		nil,        // top
		nil,        // bottom
		nil,        // left
		infoScroll, // right
		a.renderer, // center
	)

	a.window.SetContent(content)
}

func (a *App) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		// The picker already opened the byte source; feed the buffer
		// through the pipeline directly
		buf, err := io.ReadAll(reader)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.ctrl.LoadBuffer(reader.URI().Name(), buf)
	}, a.window)
}

func (a *App) updateInfo() {
	model := a.ctrl.Model()
	if model == nil {
		a.infoLabel.SetText("No model loaded")
		return
	}

	s := analysis.Summarize(model)
	a.infoLabel.SetText(fmt.Sprintf(
		"Model: %s\nFormat: %s\nTriangles: %d\nEdges: %d\nSurface Area: %.2f\nVolume: %.2f\n\nDimensions:\n  X: %.2f\n  Y: %.2f\n  Z: %.2f",
		s.Name,
		s.Format,
		s.TriangleCount,
		s.EdgeCount,
		s.SurfaceArea,
		s.Volume,
		s.Dimensions.X,
		s.Dimensions.Y,
		s.Dimensions.Z,
	))
}
