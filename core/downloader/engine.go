package downloader

import (
	"context"

	"github.com/Rohitmeena8923/Test-playlist/core/progress"
)

// Metadata is the result of resolving a playlist without downloading
// any payloads.
type Metadata struct {
	Title string
	Items []ItemMeta
}

type ItemMeta struct {
	ID    string
	Title string
}

// Report carries the per-item outcomes of one bulk download call.
type Report struct {
	Completed int
	Failed    int
}

// Request describes one bulk download invocation.
type Request struct {
	URL    string
	Format FormatSelection
	// Dir is the prepared destination directory for this collection.
	Dir string
}

// Engine is the opaque extraction engine boundary. Implementations
// must map their concrete failures into this package's error taxonomy
// (see JobError) so the orchestrator can classify without knowing the
// engine's error types.
type Engine interface {
	// ResolveMetadata queries the collection's title and item list
	// without downloading payloads.
	ResolveMetadata(ctx context.Context, url string) (*Metadata, error)

	// Download retrieves the whole collection, forwarding every raw
	// progress event to sink. It blocks until the engine gives up or
	// finishes; the returned report is valid when err is nil.
	Download(ctx context.Context, req Request, sink progress.Sink) (*Report, error)
}
