package core

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rohitmeena8923/Test-playlist/core/downloader"
	"github.com/Rohitmeena8923/Test-playlist/core/progress"
	"github.com/Rohitmeena8923/Test-playlist/session"
)

type stubEngine struct {
	mu            sync.Mutex
	metadata      *downloader.Metadata
	metadataErr   error
	downloadErr   error
	report        *downloader.Report
	downloadCalls int
}

func (e *stubEngine) ResolveMetadata(ctx context.Context, url string) (*downloader.Metadata, error) {
	if e.metadataErr != nil {
		return nil, e.metadataErr
	}
	return e.metadata, nil
}

func (e *stubEngine) Download(ctx context.Context, req downloader.Request, sink progress.Sink) (*downloader.Report, error) {
	e.mu.Lock()
	e.downloadCalls++
	e.mu.Unlock()
	if e.downloadErr != nil {
		return nil, e.downloadErr
	}
	return e.report, nil
}

func (e *stubEngine) calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.downloadCalls
}

type recordedMessage struct {
	chatID int64
	msgID  int
	text   string
	edit   bool
}

type stubMessenger struct {
	mu       sync.Mutex
	nextID   int
	messages []recordedMessage
}

func (m *stubMessenger) SendText(ctx context.Context, chatID int64, text string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.messages = append(m.messages, recordedMessage{chatID: chatID, msgID: m.nextID, text: text})
	return m.nextID, nil
}

func (m *stubMessenger) EditText(ctx context.Context, chatID int64, msgID int, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, recordedMessage{chatID: chatID, msgID: msgID, text: text, edit: true})
	return nil
}

func (m *stubMessenger) texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.messages))
	for i, msg := range m.messages {
		out[i] = msg.text
	}
	return out
}

func newTestCoordinator(t *testing.T, engine downloader.Engine) (*Coordinator, *session.Store, *stubMessenger) {
	t.Helper()
	sessions := session.NewStore()
	messenger := &stubMessenger{}
	runner := downloader.NewRunner(engine, t.TempDir(), downloader.DefaultRetryPolicy(),
		downloader.WithSleeper(func(ctx context.Context, d time.Duration) error { return nil }))
	c := NewCoordinator(sessions, runner, messenger, time.Second, WithSynchronousJobs())
	return c, sessions, messenger
}

func TestOnPlaylistURLRejectsNonPlaylists(t *testing.T) {
	c, sessions, _ := newTestCoordinator(t, &stubEngine{})

	assert.False(t, c.OnPlaylistURL(context.Background(), 7, "https://example.com/watch?v=abc"))
	assert.Equal(t, 0, sessions.Len())

	assert.True(t, c.OnPlaylistURL(context.Background(), 7, "https://youtube.com/playlist?list=PL123"))
	assert.Equal(t, 1, sessions.Len())
}

func TestOnQualityHappyPath(t *testing.T) {
	engine := &stubEngine{
		metadata: &downloader.Metadata{Title: "Go Talks", Items: []downloader.ItemMeta{
			{ID: "a", Title: "One"}, {ID: "b", Title: "Two"}, {ID: "c", Title: "Three"},
		}},
		report: &downloader.Report{Completed: 3},
	}
	c, sessions, messenger := newTestCoordinator(t, engine)

	require.True(t, c.OnPlaylistURL(context.Background(), 7, "https://youtube.com/playlist?list=PL123"))
	c.OnQuality(context.Background(), 7, 42, "720")

	texts := messenger.texts()
	require.Len(t, texts, 2)
	assert.Equal(t, "⏳ Starting download at 720 quality...", texts[0])
	assert.Equal(t, MsgAllCompleted, texts[1])
	assert.Equal(t, 1, engine.calls())
	assert.Equal(t, 0, sessions.Len(), "entry must be removed after the job ends")
}

func TestOnQualityWithoutSession(t *testing.T) {
	engine := &stubEngine{}
	c, _, messenger := newTestCoordinator(t, engine)

	c.OnQuality(context.Background(), 7, 42, "720")

	texts := messenger.texts()
	require.Len(t, texts, 1)
	assert.Equal(t, MsgSessionExpired, texts[0])
	assert.Equal(t, 0, engine.calls())
}

func TestOnQualityDuplicateSelection(t *testing.T) {
	engine := &stubEngine{
		metadata: &downloader.Metadata{Title: "Go Talks", Items: []downloader.ItemMeta{{ID: "a", Title: "One"}}},
		report:   &downloader.Report{Completed: 1},
	}
	c, _, messenger := newTestCoordinator(t, engine)

	require.True(t, c.OnPlaylistURL(context.Background(), 7, "https://youtube.com/playlist?list=PL123"))
	c.OnQuality(context.Background(), 7, 42, "720")
	c.OnQuality(context.Background(), 7, 42, "1080")

	assert.Equal(t, 1, engine.calls(), "second selection must not start another job")
	texts := messenger.texts()
	require.NotEmpty(t, texts)
	assert.Equal(t, MsgSessionExpired, texts[len(texts)-1])
}

func TestOnQualityPartialFailure(t *testing.T) {
	engine := &stubEngine{
		metadata: &downloader.Metadata{Title: "Go Talks", Items: []downloader.ItemMeta{{ID: "a", Title: "One"}}},
		report:   &downloader.Report{Completed: 2, Failed: 1},
	}
	c, _, messenger := newTestCoordinator(t, engine)

	require.True(t, c.OnPlaylistURL(context.Background(), 7, "https://youtube.com/playlist?list=PL123"))
	c.OnQuality(context.Background(), 7, 42, "best")

	texts := messenger.texts()
	assert.Equal(t, MsgSomeFailed, texts[len(texts)-1])
}

func TestOnQualityUnavailablePlaylist(t *testing.T) {
	engine := &stubEngine{metadataErr: errors.New("ERROR: Private video. Sign in if you've been granted access")}
	c, sessions, messenger := newTestCoordinator(t, engine)

	require.True(t, c.OnPlaylistURL(context.Background(), 7, "https://youtube.com/playlist?list=PL123"))
	c.OnQuality(context.Background(), 7, 42, "720")

	texts := messenger.texts()
	assert.Equal(t, MsgUnavailable, texts[len(texts)-1])
	assert.Equal(t, 0, engine.calls())
	assert.Equal(t, 0, sessions.Len())
}

func TestOnQualityInvalidQuality(t *testing.T) {
	engine := &stubEngine{}
	c, sessions, messenger := newTestCoordinator(t, engine)

	require.True(t, c.OnPlaylistURL(context.Background(), 7, "https://youtube.com/playlist?list=PL123"))
	c.OnQuality(context.Background(), 7, 42, "ultra")

	texts := messenger.texts()
	require.Len(t, texts, 1)
	assert.True(t, strings.HasPrefix(texts[0], "⚠️ Error: "), "got %q", texts[0])
	assert.Equal(t, 0, engine.calls())
	assert.Equal(t, 0, sessions.Len())
}

func TestFormatError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"network", downloader.NewJobError(downloader.ErrorCodeNetwork, "bulk download", errors.New("timed out")), msgNetworkError},
		{"exhausted", downloader.NewJobError(downloader.ErrorCodeRetryExhausted, "bulk download", errors.New("timed out")), msgNetworkError},
		{"unavailable", downloader.NewJobError(downloader.ErrorCodeUnavailable, "resolve metadata", errors.New("Video unavailable")), MsgUnavailable},
		{"nil", nil, MsgSomeFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatError(tc.err))
		})
	}

	long := strings.Repeat("x", 500)
	got := FormatError(errors.New(long))
	assert.Equal(t, "⚠️ Error: "+long[:200], got)
}
