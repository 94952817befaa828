// Package progress turns the extraction engine's high-frequency raw
// progress events into throttled per-item Telegram status messages.
package progress

import "context"

// EventStatus mirrors the engine's hook status strings. Statuses the
// tracker does not know are ignored so new engine states cannot break
// a running job.
type EventStatus string

const (
	StatusDownloading EventStatus = "downloading"
	StatusFinished    EventStatus = "finished"
)

// Event is one raw progress report for a single item.
type Event struct {
	Status     EventStatus
	ItemID     string
	Name       string
	Downloaded int64
	// Total is 0 when the engine has not reported a size yet.
	Total int64
}

// Sink consumes raw engine events. Implementations must not block the
// engine beyond what their outbound channel requires.
type Sink interface {
	OnEvent(ctx context.Context, ev Event)
}

// Messenger is the narrow outbound surface the tracker needs: one
// message slot per item, created once and edited in place. It is
// chat-scoped; the tracker knows nothing about conversations.
type Messenger interface {
	SendText(ctx context.Context, text string) (msgID int, err error)
	EditText(ctx context.Context, msgID int, text string) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, ev Event)

func (f SinkFunc) OnEvent(ctx context.Context, ev Event) {
	f(ctx, ev)
}
