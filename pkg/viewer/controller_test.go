package viewer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/edu3d/stlview/pkg/geometry"
	"github.com/edu3d/stlview/pkg/loader"
	"github.com/edu3d/stlview/pkg/stl"
)

// encodeTriangles builds a binary STL buffer holding count unit
// triangles stacked along Z
func encodeTriangles(t *testing.T, count int) []byte {
	t.Helper()
	model := stl.NewModel(fmt.Sprintf("fixture-%d", count))
	for i := 0; i < count; i++ {
		z := float64(i)
		model.AddTriangle(geometry.NewTriangle(
			geometry.NewVector3(0, 0, 1),
			geometry.NewVector3(0, 0, z),
			geometry.NewVector3(1, 0, z),
			geometry.NewVector3(0, 1, z),
		))
	}
	var buf bytes.Buffer
	if err := stl.WriteBinary(&buf, model); err != nil {
		t.Fatalf("WriteBinary failed: %v", err)
	}
	return buf.Bytes()
}

// waitPhase ticks the controller until it reaches the wanted phase
func waitPhase(t *testing.T, ctrl *Controller, want Phase) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		ctrl.Tick()
		if ctrl.Phase() == want {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for phase %v, still %v", want, ctrl.Phase())
}

func TestControllerStartsEmpty(t *testing.T) {
	ctrl := NewController(nil, nil)

	if ctrl.Phase() != PhaseEmpty {
		t.Errorf("Phase failed: expected empty, got %v", ctrl.Phase())
	}
	if ctrl.Mesh() != nil {
		t.Error("Mesh failed: expected nil before any load")
	}
}

func TestControllerLoadBufferSuccess(t *testing.T) {
	ctrl := NewController(nil, nil)

	var readyFrame CameraFrame
	readyCalls := 0
	ctrl.SetOnReady(func(mesh *stl.NormalizedMesh, frame CameraFrame) {
		readyCalls++
		readyFrame = frame
	})

	ctrl.LoadBuffer("one", encodeTriangles(t, 1))
	if ctrl.Phase() != PhaseLoading {
		t.Errorf("Phase failed: expected loading right after LoadBuffer, got %v", ctrl.Phase())
	}

	waitPhase(t, ctrl, PhaseReady)

	if ctrl.Mesh() == nil || len(ctrl.Mesh().Triangles) != 1 {
		t.Fatalf("Mesh failed: %+v", ctrl.Mesh())
	}
	if readyCalls != 1 {
		t.Errorf("OnReady failed: expected 1 call, got %d", readyCalls)
	}
	if readyFrame.Distance <= 0 {
		t.Errorf("OnReady frame failed: %+v", readyFrame)
	}
	if ctrl.Camera().Frame() != readyFrame {
		t.Error("camera reset frame does not match the emitted frame")
	}
}

func TestControllerLoadBufferError(t *testing.T) {
	ctrl := NewController(nil, nil)

	errorCalls := 0
	ctrl.SetOnError(func(error) { errorCalls++ })

	ctrl.LoadBuffer("junk", []byte("this is not a model"))
	waitPhase(t, ctrl, PhaseError)

	var parseErr *stl.ParseError
	if !errors.As(ctrl.Err(), &parseErr) {
		t.Fatalf("Err failed: expected *stl.ParseError, got %v", ctrl.Err())
	}
	if parseErr.Kind != stl.UnrecognizedFormat {
		t.Errorf("Kind failed: expected UnrecognizedFormat, got %v", parseErr.Kind)
	}
	if errorCalls != 1 {
		t.Errorf("OnError failed: expected 1 call, got %d", errorCalls)
	}
	if ctrl.Mesh() != nil {
		t.Error("Mesh failed: no partial mesh may be kept after a failure")
	}
}

func TestControllerEmptyMeshError(t *testing.T) {
	ctrl := NewController(nil, nil)

	ctrl.LoadBuffer("hollow", []byte("solid hollow\nendsolid hollow\n"))
	waitPhase(t, ctrl, PhaseError)

	var parseErr *stl.ParseError
	if !errors.As(ctrl.Err(), &parseErr) || parseErr.Kind != stl.EmptyMesh {
		t.Errorf("expected EmptyMesh, got %v", ctrl.Err())
	}
}

func TestControllerErrorThenRetry(t *testing.T) {
	ctrl := NewController(nil, nil)

	ctrl.LoadBuffer("junk", []byte("garbage"))
	waitPhase(t, ctrl, PhaseError)

	// No automatic retry: a new explicit load request leaves the error
	// state behind
	ctrl.LoadBuffer("one", encodeTriangles(t, 1))
	waitPhase(t, ctrl, PhaseReady)

	if ctrl.Err() != nil {
		t.Errorf("Err failed: expected cleared error, got %v", ctrl.Err())
	}
}

func TestControllerSuperseding(t *testing.T) {
	releaseA := make(chan struct{})
	bufA := encodeTriangles(t, 1)
	bufB := encodeTriangles(t, 2)

	serverA := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-releaseA
		w.Write(bufA)
	}))
	defer serverA.Close()
	serverB := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(bufB)
	}))
	defer serverB.Close()

	ctrl := NewController(loader.New(nil), nil)

	// Load A first, then B before A's fetch resolves
	ctrl.Load(context.Background(), serverA.URL)
	ctrl.Load(context.Background(), serverB.URL)

	waitPhase(t, ctrl, PhaseReady)
	if len(ctrl.Mesh().Triangles) != 2 {
		t.Fatalf("expected B's mesh (2 triangles), got %d", len(ctrl.Mesh().Triangles))
	}

	// Let the stale A fetch complete; its result must be dropped
	close(releaseA)
	deadline := time.Now().Add(250 * time.Millisecond)
	for time.Now().Before(deadline) {
		ctrl.Tick()
		if len(ctrl.Mesh().Triangles) != 2 {
			t.Fatal("stale load clobbered the newer mesh")
		}
		time.Sleep(2 * time.Millisecond)
	}
	if ctrl.Phase() != PhaseReady {
		t.Errorf("Phase failed: expected ready, got %v", ctrl.Phase())
	}
}

func TestControllerToggleSpinAlternates(t *testing.T) {
	ctrl := NewController(nil, nil)

	if !ctrl.ToggleSpin() || !ctrl.Spinning() {
		t.Error("first toggle should enable spinning")
	}
	if ctrl.ToggleSpin() || ctrl.Spinning() {
		t.Error("second toggle should disable spinning")
	}
}

func TestControllerSpinAdvancesPerTick(t *testing.T) {
	ctrl := NewController(nil, nil)
	ctrl.LoadBuffer("one", encodeTriangles(t, 1))
	waitPhase(t, ctrl, PhaseReady)

	ctrl.ToggleSpin()
	for i := 0; i < 3; i++ {
		ctrl.Tick()
	}

	expected := 3 * SpinStep
	if math.Abs(ctrl.SpinAngle()-expected) > 1e-10 {
		t.Errorf("SpinAngle failed: expected %v, got %v", expected, ctrl.SpinAngle())
	}

	// Disabled spin stops advancing
	ctrl.ToggleSpin()
	ctrl.Tick()
	if math.Abs(ctrl.SpinAngle()-expected) > 1e-10 {
		t.Errorf("SpinAngle failed: expected unchanged %v, got %v", expected, ctrl.SpinAngle())
	}
}

func TestControllerResetViewRestoresFrame(t *testing.T) {
	ctrl := NewController(nil, nil)
	ctrl.LoadBuffer("one", encodeTriangles(t, 1))
	waitPhase(t, ctrl, PhaseReady)

	framed := ctrl.Camera().Position
	ctrl.Orbit(0.5, 0.5)
	ctrl.ZoomBy(4)
	ctrl.ResetView()

	if ctrl.Camera().Position != framed {
		t.Errorf("ResetView failed: expected %v, got %v", framed, ctrl.Camera().Position)
	}
}
