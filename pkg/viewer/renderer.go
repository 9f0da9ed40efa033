package viewer

import (
	"image"
	"image/color"
	"image/draw"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

var (
	backgroundColor = color.RGBA{R: 15, G: 18, B: 25, A: 255}
	meshColor       = color.RGBA{R: 130, G: 170, B: 255, A: 255}
	wireColor       = color.RGBA{R: 200, G: 200, B: 200, A: 255}
)

// ModelRenderer is a Fyne widget showing the controller's current mesh
// through a software rasterizer. Dragging orbits the camera, scrolling
// zooms, and tapping the model toggles auto-rotation.
type ModelRenderer struct {
	widget.BaseWidget

	ctrl      *Controller
	img       *canvas.Image
	wireframe bool

	width, height float64
	dragStart     *fyne.Position
	isDragging    bool
}

// NewModelRenderer creates a renderer widget bound to a controller
func NewModelRenderer(ctrl *Controller) *ModelRenderer {
	r := &ModelRenderer{
		ctrl: ctrl,
		img:  canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1))),
	}
	r.img.FillMode = canvas.ImageFillStretch
	r.ExtendBaseWidget(r)
	return r
}

// SetWireframe toggles the wireframe overlay
func (r *ModelRenderer) SetWireframe(enabled bool) {
	r.wireframe = enabled
	r.Render(r.width, r.height)
}

// Redraw re-rasterizes at the last known size, for callers reacting to
// controller state changes rather than widget resizes
func (r *ModelRenderer) Redraw() {
	r.Render(r.width, r.height)
}

// Render rasterizes the current mesh at the given pixel size
func (r *ModelRenderer) Render(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	r.width = width
	r.height = height

	img := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	draw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)

	if mesh := r.ctrl.Mesh(); mesh != nil {
		cam := r.ctrl.Camera()
		spin := r.ctrl.SpinAngle()

		zbuffer := make([]float64, int(width)*int(height))
		for i := range zbuffer {
			zbuffer[i] = 1e18
		}

		// Headlight: light comes from the camera
		light := cam.Position.Sub(cam.Target).Normalize()

		for i, triangle := range mesh.Triangles {
			var corners [3]shadedVertex
			for j, vertex := range triangle.Vertices() {
				rotated := RotateY(vertex, spin)
				x, y, z := cam.Project(rotated, width, height)

				normal := RotateY(mesh.VertexNormals[i][j], spin)
				corners[j] = shadedVertex{X: x, Y: y, Z: z, Shade: clamp(normal.Dot(light), 0, 1)}
			}

			fillTriangleShaded(img, zbuffer, corners, meshColor)

			if r.wireframe {
				for j := 0; j < 3; j++ {
					a := corners[j]
					b := corners[(j+1)%3]
					drawLine(img, int(a.X), int(a.Y), int(b.X), int(b.Y), wireColor)
				}
			}
		}
	}

	r.img.Image = img
	r.img.Refresh()
}

// Dragged orbits the camera
func (r *ModelRenderer) Dragged(event *fyne.DragEvent) {
	if r.dragStart != nil {
		deltaX := event.Position.X - r.dragStart.X
		deltaY := event.Position.Y - r.dragStart.Y

		r.ctrl.Orbit(float64(-deltaY)*0.01, float64(deltaX)*0.01)
		r.Render(r.width, r.height)
	}
	r.dragStart = &event.Position
	r.isDragging = true
}

// DragEnd finishes an orbit drag
func (r *ModelRenderer) DragEnd() {
	r.dragStart = nil
	r.isDragging = false
}

// Tapped toggles auto-rotation; a tap that ends a drag is ignored
func (r *ModelRenderer) Tapped(*fyne.PointEvent) {
	if r.isDragging {
		return
	}
	r.ctrl.ToggleSpin()
}

// Scrolled zooms the camera
func (r *ModelRenderer) Scrolled(event *fyne.ScrollEvent) {
	r.ctrl.ZoomBy(1.0 - float64(event.Scrolled.DY)*0.001)
	r.Render(r.width, r.height)
}

// CreateRenderer creates the Fyne renderer for the widget
func (r *ModelRenderer) CreateRenderer() fyne.WidgetRenderer {
	return &modelWidgetRenderer{renderer: r}
}

type modelWidgetRenderer struct {
	renderer *ModelRenderer
}

func (m *modelWidgetRenderer) Layout(size fyne.Size) {
	m.renderer.img.Resize(size)
	m.renderer.Render(float64(size.Width), float64(size.Height))
}

func (m *modelWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (m *modelWidgetRenderer) Refresh() {
	canvas.Refresh(m.renderer)
}

func (m *modelWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{m.renderer.img}
}

func (m *modelWidgetRenderer) Destroy() {}
