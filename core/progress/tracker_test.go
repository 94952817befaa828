package progress

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeMessenger struct {
	mu      sync.Mutex
	sends   []string
	edits   []string
	nextID  int
	sendErr error
	editErr error
}

func (m *fakeMessenger) SendText(_ context.Context, text string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return 0, m.sendErr
	}
	m.nextID++
	m.sends = append(m.sends, text)
	return m.nextID, nil
}

func (m *fakeMessenger) EditText(_ context.Context, msgID int, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.editErr != nil {
		return m.editErr
	}
	m.edits = append(m.edits, text)
	return nil
}

func (m *fakeMessenger) counts() (sends, edits int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sends), len(m.edits)
}

func downloading(id string, downloaded, total int64) Event {
	return Event{Status: StatusDownloading, ItemID: id, Name: id + ".mp4", Downloaded: downloaded, Total: total}
}

func TestFirstEventCreatesImmediately(t *testing.T) {
	msgr := &fakeMessenger{}
	tr := NewTracker(msgr, DefaultWindow, WithClock(newFakeClock().Now))

	tr.OnEvent(context.Background(), downloading("vid1", 100, 1000))

	sends, edits := msgr.counts()
	assert.Equal(t, 1, sends)
	assert.Zero(t, edits)
	assert.Contains(t, msgr.sends[0], "Downloading: vid1.mp4")
}

func TestEventsWithinWindowAreThrottled(t *testing.T) {
	clock := newFakeClock()
	msgr := &fakeMessenger{}
	tr := NewTracker(msgr, 5*time.Second, WithClock(clock.Now))

	// Ten raw events inside one window: exactly one create, no edits.
	for i := 0; i < 10; i++ {
		tr.OnEvent(context.Background(), downloading("vid1", int64(i*100), 1000))
		clock.Advance(400 * time.Millisecond)
	}

	sends, edits := msgr.counts()
	assert.Equal(t, 1, sends)
	assert.Zero(t, edits)
}

func TestEditAfterWindowElapses(t *testing.T) {
	clock := newFakeClock()
	msgr := &fakeMessenger{}
	tr := NewTracker(msgr, 5*time.Second, WithClock(clock.Now))

	tr.OnEvent(context.Background(), downloading("vid1", 100, 1000))
	clock.Advance(6 * time.Second)
	tr.OnEvent(context.Background(), downloading("vid1", 700, 1000))

	sends, edits := msgr.counts()
	assert.Equal(t, 1, sends)
	require.Equal(t, 1, edits)
	assert.Contains(t, msgr.edits[0], "70.0%")
	// 600 bytes over 6 seconds.
	assert.Contains(t, msgr.edits[0], "Speed: 0.1 KB/s")
}

func TestFinishedAlwaysFinalizes(t *testing.T) {
	clock := newFakeClock()
	msgr := &fakeMessenger{}
	tr := NewTracker(msgr, 5*time.Second, WithClock(clock.Now))

	tr.OnEvent(context.Background(), downloading("vid1", 100, 1000))
	// Well inside the window; finalize must bypass it.
	clock.Advance(time.Second)
	tr.OnEvent(context.Background(), Event{Status: StatusFinished, ItemID: "vid1", Name: "vid1.mp4"})

	sends, edits := msgr.counts()
	assert.Equal(t, 1, sends)
	require.Equal(t, 1, edits)
	assert.Equal(t, "Download complete: vid1.mp4", msgr.edits[0])
}

func TestFinishedReleasesItemState(t *testing.T) {
	msgr := &fakeMessenger{}
	tr := NewTracker(msgr, 5*time.Second, WithClock(newFakeClock().Now))

	tr.OnEvent(context.Background(), downloading("vid1", 100, 1000))
	tr.OnEvent(context.Background(), Event{Status: StatusFinished, ItemID: "vid1"})

	// A new event for the same id starts a fresh slot.
	tr.OnEvent(context.Background(), downloading("vid1", 0, 500))
	sends, _ := msgr.counts()
	assert.Equal(t, 2, sends)
}

func TestItemsThrottleIndependently(t *testing.T) {
	clock := newFakeClock()
	msgr := &fakeMessenger{}
	tr := NewTracker(msgr, 5*time.Second, WithClock(clock.Now))

	tr.OnEvent(context.Background(), downloading("vid1", 100, 1000))
	tr.OnEvent(context.Background(), downloading("vid2", 50, 2000))

	sends, edits := msgr.counts()
	assert.Equal(t, 2, sends)
	assert.Zero(t, edits)
}

func TestUnknownStatusIgnored(t *testing.T) {
	msgr := &fakeMessenger{}
	tr := NewTracker(msgr, DefaultWindow)

	tr.OnEvent(context.Background(), Event{Status: "postprocessing", ItemID: "vid1"})

	sends, edits := msgr.counts()
	assert.Zero(t, sends)
	assert.Zero(t, edits)
}

func TestOutboundFailuresAreSwallowed(t *testing.T) {
	clock := newFakeClock()
	msgr := &fakeMessenger{sendErr: errors.New("FLOOD_WAIT"), editErr: errors.New("MESSAGE_NOT_MODIFIED")}
	tr := NewTracker(msgr, 5*time.Second, WithClock(clock.Now))

	assert.NotPanics(t, func() {
		tr.OnEvent(context.Background(), downloading("vid1", 100, 1000))
		clock.Advance(6 * time.Second)
		tr.OnEvent(context.Background(), downloading("vid1", 900, 1000))
		tr.OnEvent(context.Background(), Event{Status: StatusFinished, ItemID: "vid1"})
	})
}

func TestCreateRetriedAfterFailedSend(t *testing.T) {
	clock := newFakeClock()
	msgr := &fakeMessenger{sendErr: errors.New("unreachable")}
	tr := NewTracker(msgr, 5*time.Second, WithClock(clock.Now))

	tr.OnEvent(context.Background(), downloading("vid1", 100, 1000))

	msgr.mu.Lock()
	msgr.sendErr = nil
	msgr.mu.Unlock()
	clock.Advance(6 * time.Second)
	tr.OnEvent(context.Background(), downloading("vid1", 500, 1000))

	sends, edits := msgr.counts()
	assert.Equal(t, 1, sends)
	assert.Zero(t, edits)
}
