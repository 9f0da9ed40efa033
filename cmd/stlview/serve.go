package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/edu3d/stlview/internal/server"
	"github.com/edu3d/stlview/pkg/loader"
	"github.com/edu3d/stlview/pkg/stl"
	"github.com/edu3d/stlview/pkg/viewer"
	"github.com/edu3d/stlview/pkg/watcher"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve <file>",
	Short: "Serve a model to browser viewers over WebSocket",
	Long: `Start an HTTP server that renders the model in the browser. The model
file is watched for changes and all connected viewers receive the new
mesh on save.`,
	Args: cobra.ExactArgs(1),
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	path := args[0]
	sink := buildSink()

	srv := server.New(sink)
	ctrl := viewer.NewController(loader.New(sink), sink)
	ctrl.SetOnReady(func(mesh *stl.NormalizedMesh, frame viewer.CameraFrame) {
		name := ""
		if model := ctrl.Model(); model != nil {
			name = model.Name
		}
		srv.PublishMesh(name, mesh)
		srv.PublishCamera(frame)
		fmt.Printf("Published %d triangles to %d client(s)\n", len(mesh.Triangles), srv.ClientCount())
	})
	ctrl.SetOnError(func(err error) {
		srv.PublishError(err.Error())
		fmt.Fprintf(os.Stderr, "Error loading model: %v\n", err)
	})

	ctrl.Load(context.Background(), path)

	w, err := watcher.New(500 * time.Millisecond)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file watching unavailable: %v\n", err)
	} else {
		defer w.Close()
		if err := w.Add(path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot watch %s: %v\n", path, err)
		}
	}

	// Drive the controller: apply finished loads and react to changes
	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ctrl.Tick()
			case changed := <-events(w):
				fmt.Printf("File changed: %s\n", changed)
				ctrl.Load(context.Background(), path)
			}
		}
	}()

	fmt.Printf("Serving %s on http://localhost%s\n", path, serveAddr)
	if err := http.ListenAndServe(serveAddr, srv.Handler()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// events tolerates a nil watcher so the serve loop works without one
func events(w *watcher.Watcher) <-chan string {
	if w == nil {
		return nil
	}
	return w.Events()
}
