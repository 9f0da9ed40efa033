package main

import (
	"log"
	"os"

	"github.com/edu3d/stlview/pkg/diag"
)

// buildSink returns a stderr-backed sink when --verbose is set, so
// pipeline events (load, parse, supersede) become visible
func buildSink() diag.Sink {
	if !verbose {
		return diag.Discard
	}
	return diag.NewLogSink(log.New(os.Stderr, "", log.LstdFlags))
}
