package loader

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/edu3d/stlview/pkg/stl"
)

func TestLoadFromURL(t *testing.T) {
	payload := []byte("solid remote\nendsolid remote\n")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	buf, err := New(nil).Load(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(buf, payload) {
		t.Errorf("Load failed: expected %q, got %q", payload, buf)
	}
}

func TestLoadFromURLServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := New(nil).Load(context.Background(), server.URL)

	var parseErr *stl.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *stl.ParseError, got %T: %v", err, err)
	}
	if parseErr.Kind != stl.FetchFailed {
		t.Errorf("Kind failed: expected FetchFailed, got %v", parseErr.Kind)
	}
}

func TestLoadSizeCap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(bytes.Repeat([]byte("x"), 256))
	}))
	defer server.Close()

	l := New(nil)
	l.MaxSize = 128

	_, err := l.Load(context.Background(), server.URL)
	var parseErr *stl.ParseError
	if !errors.As(err, &parseErr) || parseErr.Kind != stl.FetchFailed {
		t.Errorf("expected FetchFailed for oversized response, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	payload := []byte("solid local\nendsolid local\n")
	path := filepath.Join(t.TempDir(), "model.stl")
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatal(err)
	}

	buf, err := New(nil).Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(buf, payload) {
		t.Errorf("Load failed: expected %q, got %q", payload, buf)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := New(nil).Load(context.Background(), filepath.Join(t.TempDir(), "missing.stl"))

	var parseErr *stl.ParseError
	if !errors.As(err, &parseErr) || parseErr.Kind != stl.FetchFailed {
		t.Errorf("expected FetchFailed for missing file, got %v", err)
	}
}
