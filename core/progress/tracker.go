package progress

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultWindow is the minimum interval between successive outbound
// edits for the same item.
const DefaultWindow = 5 * time.Second

// itemState is the mutable per-item record. It exists from the first
// event for an item until the item finishes.
type itemState struct {
	name       string
	msgID      int
	downloaded int64
	total      int64
	lastEmit   time.Time
	lastBytes  int64
}

// Tracker implements Sink. For every item the first event produces an
// immediate message create, later events at most one edit per window,
// and the finished event exactly one finalize edit that bypasses the
// window. Outbound failures are logged and swallowed so the download
// is never aborted by a flaky notification channel.
type Tracker struct {
	messenger Messenger
	window    time.Duration
	now       func() time.Time

	mu    sync.Mutex
	items map[string]*itemState
}

type TrackerOption func(*Tracker)

// WithClock replaces the wall clock, used by tests to step the
// throttling window without sleeping.
func WithClock(now func() time.Time) TrackerOption {
	return func(t *Tracker) {
		t.now = now
	}
}

func NewTracker(messenger Messenger, window time.Duration, opts ...TrackerOption) *Tracker {
	if window <= 0 {
		window = DefaultWindow
	}
	t := &Tracker{
		messenger: messenger,
		window:    window,
		now:       time.Now,
		items:     make(map[string]*itemState),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// OnEvent implements Sink.
func (t *Tracker) OnEvent(ctx context.Context, ev Event) {
	if ev.ItemID == "" {
		return
	}

	switch ev.Status {
	case StatusDownloading:
		t.onDownloading(ctx, ev)
	case StatusFinished:
		t.onFinished(ctx, ev)
	default:
		// Forward-compatible no-op for statuses we do not render.
	}
}

func (t *Tracker) onDownloading(ctx context.Context, ev Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	state, seen := t.items[ev.ItemID]
	if !seen {
		// First sight of an item always emits so the user promptly
		// sees progress start; the window only governs edits.
		state = &itemState{name: ev.Name}
		t.items[ev.ItemID] = state
		t.apply(state, ev, now)
		t.emitCreate(ctx, state, ev, 0)
		return
	}

	if now.Sub(state.lastEmit) < t.window {
		state.downloaded = ev.Downloaded
		if ev.Total > 0 {
			state.total = ev.Total
		}
		return
	}

	speed := byteRate(ev.Downloaded-state.lastBytes, now.Sub(state.lastEmit))
	t.apply(state, ev, now)

	if state.msgID == 0 {
		// The create failed earlier; try again in this slot.
		t.emitCreate(ctx, state, ev, speed)
		return
	}

	text := renderDownloading(state.name, state.downloaded, state.total, speed)
	if err := t.messenger.EditText(ctx, state.msgID, text); err != nil {
		// Unmodified content and vanished messages are not worth
		// failing a download over.
		log.FromContext(ctx).Debug("progress edit failed", "item", ev.ItemID, "error", err)
	}
}

func (t *Tracker) onFinished(ctx context.Context, ev Event) {
	t.mu.Lock()
	state, ok := t.items[ev.ItemID]
	delete(t.items, ev.ItemID)
	t.mu.Unlock()

	name := ev.Name
	if name == "" && ok {
		name = state.name
	}
	text := renderFinished(name)

	// Finalize bypasses the window: a terminal message must never be
	// dropped by throttling.
	if ok && state.msgID != 0 {
		if err := t.messenger.EditText(ctx, state.msgID, text); err != nil {
			log.FromContext(ctx).Debug("finalize edit failed", "item", ev.ItemID, "error", err)
		}
		return
	}
	if _, err := t.messenger.SendText(ctx, text); err != nil {
		log.FromContext(ctx).Debug("finalize send failed", "item", ev.ItemID, "error", err)
	}
}

func (t *Tracker) apply(state *itemState, ev Event, now time.Time) {
	if ev.Name != "" {
		state.name = ev.Name
	}
	state.downloaded = ev.Downloaded
	if ev.Total > 0 {
		state.total = ev.Total
	}
	state.lastEmit = now
	state.lastBytes = ev.Downloaded
}

func (t *Tracker) emitCreate(ctx context.Context, state *itemState, ev Event, speed float64) {
	text := renderDownloading(state.name, state.downloaded, state.total, speed)
	msgID, err := t.messenger.SendText(ctx, text)
	if err != nil {
		log.FromContext(ctx).Debug("progress create failed", "item", ev.ItemID, "error", err)
		return
	}
	state.msgID = msgID
}

func byteRate(deltaBytes int64, elapsed time.Duration) float64 {
	if elapsed <= 0 || deltaBytes <= 0 {
		return 0
	}
	return float64(deltaBytes) / elapsed.Seconds()
}

var _ Sink = (*Tracker)(nil)
