// Package diag defines the diagnostic sink the pipeline reports through.
// The hosting application plugs in its own logger or analytics adapter;
// library code never depends on a concrete global logger and defaults to
// dropping events.
package diag

import (
	"fmt"
	"log"
	"sort"
	"strings"
)

// Sink receives structured diagnostic events from the pipeline
type Sink interface {
	Log(event string, fields map[string]any)
}

// Discard is a Sink that drops everything
var Discard Sink = discard{}

type discard struct{}

func (discard) Log(string, map[string]any) {}

// OrDiscard returns sink, or Discard if sink is nil
func OrDiscard(sink Sink) Sink {
	if sink == nil {
		return Discard
	}
	return sink
}

// logSink adapts a standard library logger to Sink
type logSink struct {
	logger *log.Logger
}

// NewLogSink returns a Sink writing to the given logger, or to the
// default logger if nil
func NewLogSink(logger *log.Logger) Sink {
	if logger == nil {
		logger = log.Default()
	}
	return &logSink{logger: logger}
}

func (s *logSink) Log(event string, fields map[string]any) {
	if len(fields) == 0 {
		s.logger.Print(event)
		return
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(event)
	for _, key := range keys {
		fmt.Fprintf(&b, " %s=%v", key, fields[key])
	}
	s.logger.Print(b.String())
}
