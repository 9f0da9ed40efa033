// Package loader fetches raw model bytes from a URL or a local file.
package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/edu3d/stlview/pkg/diag"
	"github.com/edu3d/stlview/pkg/stl"
)

// Loader fetches the raw bytes behind a model reference. The zero value
// is usable: requests go through http.DefaultClient-like settings, the
// size cap defaults to stl.MaxModelSize, and diagnostics are dropped.
type Loader struct {
	Client  *http.Client
	Sink    diag.Sink
	MaxSize int64
}

// New creates a Loader with a timeout-bounded HTTP client and the given
// diagnostic sink
func New(sink diag.Sink) *Loader {
	return &Loader{
		Client: &http.Client{Timeout: 60 * time.Second},
		Sink:   sink,
	}
}

// Load fetches the bytes behind ref. A reference starting with http://
// or https:// is fetched over the network; anything else is read as a
// local file path. Failures are reported as FetchFailed with the cause
// wrapped.
func (l *Loader) Load(ctx context.Context, ref string) ([]byte, error) {
	sink := diag.OrDiscard(l.Sink)
	requestID := uuid.NewString()
	sink.Log("load.start", map[string]any{"request_id": requestID, "ref": ref})

	var (
		buf []byte
		err error
	)
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		buf, err = l.fetchURL(ctx, ref)
	} else {
		buf, err = l.readFile(ref)
	}
	if err != nil {
		sink.Log("load.error", map[string]any{"request_id": requestID, "error": err.Error()})
		return nil, &stl.ParseError{Kind: stl.FetchFailed, Err: err}
	}

	sink.Log("load.done", map[string]any{"request_id": requestID, "bytes": len(buf)})
	return buf, nil
}

func (l *Loader) maxSize() int64 {
	if l.MaxSize > 0 {
		return l.MaxSize
	}
	return stl.MaxModelSize
}

func (l *Loader) fetchURL(ctx context.Context, url string) ([]byte, error) {
	client := l.Client
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	limit := l.maxSize()
	buf, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	if int64(len(buf)) > limit {
		return nil, fmt.Errorf("response exceeds the %d byte model limit", limit)
	}

	return buf, nil
}

func (l *Loader) readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > l.maxSize() {
		return nil, fmt.Errorf("file exceeds the %d byte model limit", l.maxSize())
	}
	return os.ReadFile(path)
}
