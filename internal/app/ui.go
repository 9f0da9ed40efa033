package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/edu3d/stlview/pkg/analysis"
	"github.com/edu3d/stlview/pkg/viewer"
	"github.com/edu3d/stlview/version"
)

// drawUI draws the overlay: info panel, phase indicator, and key help
func (app *App) drawUI() {
	screenWidth := int32(rl.GetScreenWidth())
	screenHeight := int32(rl.GetScreenHeight())

	switch app.ctrl.Phase() {
	case viewer.PhaseLoading:
		app.drawBanner(screenWidth, "Loading model...", rl.Yellow)
	case viewer.PhaseError:
		msg := "Load failed"
		if err := app.ctrl.Err(); err != nil {
			msg = err.Error()
		}
		app.drawBanner(screenWidth, msg, rl.NewColor(255, 120, 120, 255))
	}

	if app.View.showInfo && app.Model.summary != nil {
		app.drawInfoPanel(app.Model.summary)
	}

	// Key help along the bottom edge
	help := "Drag: rotate | Shift+drag: pan | Wheel: zoom | Click/Space: spin | W: wireframe | F: fill | I: info | Home: reset | T/B/1-4: views"
	rl.DrawText(help, 10, screenHeight-22, 12, rl.Gray)

	versionText := fmt.Sprintf("stlview %s", version.Version)
	textWidth := rl.MeasureText(versionText, 12)
	rl.DrawText(versionText, screenWidth-textWidth-10, screenHeight-22, 12, rl.DarkGray)
}

func (app *App) drawBanner(screenWidth int32, text string, color rl.Color) {
	boxWidth := rl.MeasureText(text, 18) + 24
	boxX := screenWidth - boxWidth - 20
	boxY := int32(20)

	rl.DrawRectangle(boxX, boxY, boxWidth, 36, rl.NewColor(0, 0, 0, 180))
	rl.DrawRectangleLines(boxX, boxY, boxWidth, 36, color)
	rl.DrawText(text, boxX+12, boxY+9, 18, color)
}

func (app *App) drawInfoPanel(s *analysis.Summary) {
	lines := []string{
		fmt.Sprintf("Model: %s", displayName(s.Name)),
		fmt.Sprintf("Format: %s", s.Format),
		fmt.Sprintf("Triangles: %d", s.TriangleCount),
		fmt.Sprintf("Size: %s", analysis.FormatVector(s.Dimensions)),
		fmt.Sprintf("Surface area: %s", analysis.FormatLength(s.SurfaceArea)),
		fmt.Sprintf("Volume: %s", analysis.FormatLength(s.Volume)),
	}

	y := int32(10)
	rl.DrawRectangle(5, 5, 280, int32(len(lines))*20+14, rl.NewColor(0, 0, 0, 150))
	for _, line := range lines {
		rl.DrawText(line, 12, y, 16, rl.RayWhite)
		y += 20
	}
}

func displayName(name string) string {
	if name == "" {
		return "(unnamed)"
	}
	return name
}
