// Package core wires the session registry, the download orchestrator
// and the outbound messenger into the two-step URL -> quality flow.
package core

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Rohitmeena8923/Test-playlist/core/downloader"
	"github.com/Rohitmeena8923/Test-playlist/core/progress"
	"github.com/Rohitmeena8923/Test-playlist/session"
)

// Messenger is the outbound chat surface the coordinator needs.
// Implementations must be safe for concurrent use.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string) (msgID int, err error)
	EditText(ctx context.Context, chatID int64, msgID int, text string) error
}

const (
	MsgInvalidURL     = "⚠️ Please send a valid YouTube playlist URL"
	MsgSessionExpired = "❌ Session expired. Please start over."
	MsgAllCompleted   = "✅ All downloads completed!"
	MsgSomeFailed     = "⚠️ Some videos failed to download. Try again later."
	MsgUnavailable    = "❌ Video is unavailable or private"

	msgNetworkError = "⚠️ Download failed - Network Error\n\n" +
		"Possible solutions:\n" +
		"1. Try again later\n" +
		"2. Use a better network connection\n" +
		"3. Try smaller playlists\n" +
		"4. Contact support if persists"

	rawErrorLimit = 200
)

type Coordinator struct {
	sessions  *session.Store
	runner    *downloader.Runner
	messenger Messenger
	window    time.Duration

	// synchronous makes OnQuality run the job inline, used by tests
	// to avoid racing the spawned goroutine.
	synchronous bool
}

type CoordinatorOption func(*Coordinator)

func WithSynchronousJobs() CoordinatorOption {
	return func(c *Coordinator) {
		c.synchronous = true
	}
}

func NewCoordinator(sessions *session.Store, runner *downloader.Runner, messenger Messenger, window time.Duration, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		sessions:  sessions,
		runner:    runner,
		messenger: messenger,
		window:    window,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnPlaylistURL records the pending URL for the conversation,
// replacing any stale entry. It reports whether the text was accepted.
func (c *Coordinator) OnPlaylistURL(ctx context.Context, chatID int64, text string) bool {
	if !downloader.IsPlaylistURL(text) {
		return false
	}
	c.sessions.Put(chatID, text)
	log.FromContext(ctx).Debug("recorded playlist url", "chat", chatID)
	return true
}

// OnQuality consumes the pending session entry and starts the download
// job. ackMsgID is the quality-keyboard message, edited in place for
// the acknowledgement and for input errors.
func (c *Coordinator) OnQuality(ctx context.Context, chatID int64, ackMsgID int, quality string) {
	logger := log.FromContext(ctx)

	url, ok := c.sessions.Begin(chatID)
	if !ok {
		// Stale keyboard or racing duplicate selection: either way
		// there is no job to start.
		c.edit(ctx, chatID, ackMsgID, MsgSessionExpired)
		return
	}

	job, err := downloader.NewJob(url, quality)
	if err != nil {
		logger.Warn("rejected job request", "chat", chatID, "quality", quality, "error", err)
		c.edit(ctx, chatID, ackMsgID, FormatError(err))
		c.sessions.Remove(chatID)
		return
	}

	c.edit(ctx, chatID, ackMsgID, "⏳ Starting download at "+quality+" quality...")

	if c.synchronous {
		c.runJob(ctx, chatID, job)
		return
	}
	// The engine call is long-running and blocking; run it off the
	// dispatcher goroutine so other conversations stay responsive.
	go c.runJob(ctx, chatID, job)
}

func (c *Coordinator) runJob(ctx context.Context, chatID int64, job *downloader.Job) {
	logger := log.FromContext(ctx).With("job", job.ID, "chat", chatID)

	// The entry must be gone after every terminal path, or the
	// conversation would be stuck refusing new URLs.
	defer c.sessions.Remove(chatID)
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic recovered in job", "panic", r, "stack", string(debug.Stack()))
			c.send(ctx, chatID, MsgSomeFailed)
		}
	}()

	tracker := progress.NewTracker(chatMessenger{c.messenger, chatID}, c.window)

	outcome, err := c.runner.Run(ctx, job, tracker)
	switch outcome {
	case downloader.OutcomeSuccess:
		c.send(ctx, chatID, MsgAllCompleted)
	case downloader.OutcomePartialFailure:
		c.send(ctx, chatID, MsgSomeFailed)
	default:
		logger.Error("job failed", "error", err)
		c.send(ctx, chatID, FormatError(err))
	}
}

// FormatError renders a classified job failure for the user. Raw text
// of unclassified errors is truncated so engine stack traces never
// flood the chat.
func FormatError(err error) string {
	if err == nil {
		return MsgSomeFailed
	}
	switch downloader.CodeOf(err) {
	case downloader.ErrorCodeNetwork, downloader.ErrorCodeRetryExhausted:
		return msgNetworkError
	case downloader.ErrorCodeUnavailable:
		return MsgUnavailable
	default:
		raw := err.Error()
		if len(raw) > rawErrorLimit {
			raw = raw[:rawErrorLimit]
		}
		return "⚠️ Error: " + raw
	}
}

func (c *Coordinator) send(ctx context.Context, chatID int64, text string) {
	if _, err := c.messenger.SendText(ctx, chatID, text); err != nil {
		log.FromContext(ctx).Warn("send failed", "chat", chatID, "error", err)
	}
}

func (c *Coordinator) edit(ctx context.Context, chatID int64, msgID int, text string) {
	if err := c.messenger.EditText(ctx, chatID, msgID, text); err != nil {
		log.FromContext(ctx).Debug("edit failed", "chat", chatID, "error", err)
	}
}

// chatMessenger narrows the coordinator's Messenger to one chat for
// the progress tracker.
type chatMessenger struct {
	messenger Messenger
	chatID    int64
}

func (m chatMessenger) SendText(ctx context.Context, text string) (int, error) {
	return m.messenger.SendText(ctx, m.chatID, text)
}

func (m chatMessenger) EditText(ctx context.Context, msgID int, text string) error {
	return m.messenger.EditText(ctx, m.chatID, msgID, text)
}

var _ progress.Messenger = chatMessenger{}
