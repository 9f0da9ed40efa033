package viewer

import (
	"context"
	"sync"

	"github.com/edu3d/stlview/pkg/diag"
	"github.com/edu3d/stlview/pkg/geometry"
	"github.com/edu3d/stlview/pkg/loader"
	"github.com/edu3d/stlview/pkg/stl"
)

// Phase is the viewport lifecycle state
type Phase int

const (
	PhaseEmpty Phase = iota
	PhaseLoading
	PhaseReady
	PhaseError
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseError:
		return "error"
	}
	return "unknown"
}

// SpinStep is the angular increment applied per rendered frame while
// auto-rotation is enabled
const SpinStep = 0.01

type loadResult struct {
	generation uint64
	ref        string
	model      *stl.Model
	mesh       *stl.NormalizedMesh
	frame      CameraFrame
	err        error
}

// Controller owns the state of one viewport: the current mesh, camera,
// auto-rotation flag, and load lifecycle. Mutating methods are meant to
// be called from the render thread; background loads hand their result
// over through a generation-tagged pending slot that Tick applies.
//
// A newer load request supersedes an older in-flight one: results
// carrying a stale generation token are dropped, so a slow late-arriving
// load can never clobber a faster new one.
type Controller struct {
	loader *loader.Loader
	sink   diag.Sink

	phase     Phase
	model     *stl.Model
	mesh      *stl.NormalizedMesh
	camera    *Camera
	spin      bool
	spinAngle float64
	lastErr   error

	mu         sync.Mutex
	generation uint64
	pending    *loadResult

	onReady func(*stl.NormalizedMesh, CameraFrame)
	onError func(error)
}

// NewController creates an empty viewport controller. The loader may be
// nil if only LoadBuffer is used.
func NewController(l *loader.Loader, sink diag.Sink) *Controller {
	return &Controller{
		loader: l,
		sink:   diag.OrDiscard(sink),
		camera: NewCamera(FrameBounds(geometry.BoundingBox{})),
	}
}

// SetOnReady registers the callback invoked when a load completes, with
// the render-ready mesh and its computed camera frame. UI-level reset
// controls wire up against the frame without re-running the pipeline.
func (c *Controller) SetOnReady(fn func(*stl.NormalizedMesh, CameraFrame)) {
	c.onReady = fn
}

// SetOnError registers the callback invoked when a load fails
func (c *Controller) SetOnError(fn func(error)) {
	c.onError = fn
}

// Phase returns the current lifecycle state
func (c *Controller) Phase() Phase {
	return c.phase
}

// Mesh returns the mesh currently shown, or nil
func (c *Controller) Mesh() *stl.NormalizedMesh {
	return c.mesh
}

// Model returns the parsed model behind the current mesh, or nil. It
// carries the name, wire format and pre-normalization coordinates that
// info panels report.
func (c *Controller) Model() *stl.Model {
	return c.model
}

// Camera returns the interactive camera
func (c *Controller) Camera() *Camera {
	return c.camera
}

// Err returns the failure that put the controller into PhaseError
func (c *Controller) Err() error {
	return c.lastErr
}

// Load requests a new model by reference (URL or file path). The fetch
// and parse run on a background goroutine; the result is applied by the
// next Tick after completion. There is no automatic retry: a failure is
// terminal until the next Load call.
func (c *Controller) Load(ctx context.Context, ref string) {
	gen := c.nextGeneration()
	c.phase = PhaseLoading
	c.sink.Log("viewport.load", map[string]any{"ref": ref, "generation": gen})

	go c.run(gen, ref, func() ([]byte, error) {
		return c.loader.Load(ctx, ref)
	})
}

// LoadBuffer feeds an in-memory byte buffer through the same pipeline,
// for byte sources that were already fetched by the collaborator (a
// local file picker upload, typically)
func (c *Controller) LoadBuffer(name string, buf []byte) {
	gen := c.nextGeneration()
	c.phase = PhaseLoading
	c.sink.Log("viewport.load", map[string]any{"ref": name, "generation": gen, "bytes": len(buf)})

	go c.run(gen, name, func() ([]byte, error) {
		return buf, nil
	})
}

func (c *Controller) nextGeneration() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	return c.generation
}

// run executes the pipeline stages in sequence and parks the outcome
// for the render thread, dropping it if a newer load has started since
func (c *Controller) run(gen uint64, ref string, fetch func() ([]byte, error)) {
	result := &loadResult{generation: gen, ref: ref}

	buf, err := fetch()
	if err == nil {
		var model *stl.Model
		if model, err = stl.Parse(buf); err == nil {
			var mesh *stl.NormalizedMesh
			if mesh, err = stl.Normalize(model); err == nil {
				result.model = model
				result.mesh = mesh
				result.frame = FrameBounds(mesh.Bounds)
			}
		}
	}
	result.err = err

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		c.sink.Log("viewport.superseded", map[string]any{"ref": ref, "generation": gen})
		return
	}
	c.pending = result
}

// Tick advances per-frame state: it applies a completed load, if any,
// and advances the auto-rotation angle while spinning. It reports
// whether anything changed that warrants a redraw.
func (c *Controller) Tick() bool {
	changed := c.applyPending()
	if c.spin && c.phase == PhaseReady {
		c.spinAngle += SpinStep
		changed = true
	}
	return changed
}

func (c *Controller) applyPending() bool {
	c.mu.Lock()
	result := c.pending
	c.pending = nil
	current := c.generation
	c.mu.Unlock()

	if result == nil || result.generation != current {
		return false
	}

	if result.err != nil {
		c.phase = PhaseError
		c.lastErr = result.err
		c.sink.Log("viewport.error", map[string]any{"ref": result.ref, "error": result.err.Error()})
		if c.onError != nil {
			c.onError(result.err)
		}
		return true
	}

	// Mesh and camera frame are replaced wholesale; no partial mesh is
	// ever shown
	c.model = result.model
	c.mesh = result.mesh
	c.camera.SetFrame(result.frame)
	c.spinAngle = 0
	c.lastErr = nil
	c.phase = PhaseReady
	c.sink.Log("viewport.ready", map[string]any{
		"ref":       result.ref,
		"triangles": len(result.mesh.Triangles),
	})
	if c.onReady != nil {
		c.onReady(result.mesh, result.frame)
	}
	return true
}

// ToggleSpin alternates the auto-rotation flag; repeated triggers
// toggle it on and off
func (c *Controller) ToggleSpin() bool {
	c.spin = !c.spin
	return c.spin
}

// Spinning reports whether auto-rotation is enabled
func (c *Controller) Spinning() bool {
	return c.spin
}

// SpinAngle returns the accumulated auto-rotation angle in radians
func (c *Controller) SpinAngle() float64 {
	return c.spinAngle
}

// ResetView restores the camera frame computed for the current mesh
func (c *Controller) ResetView() {
	c.camera.Reset()
}

// Orbit rotates the camera around the target
func (c *Controller) Orbit(deltaX, deltaY float64) {
	c.camera.Rotate(deltaX, deltaY)
}

// Pan shifts the orbit target in the camera plane
func (c *Controller) Pan(deltaX, deltaY float64) {
	c.camera.Pan(deltaX, deltaY)
}

// ZoomBy scales the camera distance by factor without changing the
// target
func (c *Controller) ZoomBy(factor float64) {
	c.camera.ZoomFactor(factor)
}
