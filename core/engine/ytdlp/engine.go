// Package ytdlp adapts the yt-dlp extraction engine to the
// orchestrator's Engine interface. All knowledge of yt-dlp flags,
// hook payloads and error text stays behind this boundary.
package ytdlp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	ytdlp "github.com/lrstanley/go-ytdlp"

	"github.com/Rohitmeena8923/Test-playlist/core/downloader"
	"github.com/Rohitmeena8923/Test-playlist/core/progress"
)

const progressHookInterval = 250 * time.Millisecond

type Engine struct{}

func New() *Engine {
	return &Engine{}
}

var _ downloader.Engine = (*Engine)(nil)

// playlistProbe is the subset of yt-dlp's --dump-single-json output
// the orchestrator needs.
type playlistProbe struct {
	Title   string `json:"title"`
	Entries []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"entries"`
}

// ResolveMetadata probes the playlist without downloading payloads.
func (e *Engine) ResolveMetadata(ctx context.Context, url string) (*downloader.Metadata, error) {
	cmd := e.buildCommand().
		SkipDownload().
		DumpSingleJSON().
		FlatPlaylist()

	res, err := cmd.Run(ctx, url)
	if err != nil {
		return nil, downloader.Classify("resolve metadata", err)
	}

	var probe playlistProbe
	if err := json.Unmarshal([]byte(res.Stdout), &probe); err != nil {
		return nil, downloader.NewJobError(downloader.ErrorCodeDownloadFailed,
			"parse metadata", err)
	}
	if len(probe.Entries) == 0 {
		return nil, downloader.NewJobError(downloader.ErrorCodeInvalidInput,
			"resolve metadata", fmt.Errorf("no entries found, unsupported url"))
	}

	meta := &downloader.Metadata{Title: probe.Title}
	if meta.Title == "" {
		meta.Title = "playlist"
	}
	for _, entry := range probe.Entries {
		meta.Items = append(meta.Items, downloader.ItemMeta{ID: entry.ID, Title: entry.Title})
	}
	return meta, nil
}

// Download runs the bulk retrieval, forwarding hook updates to sink.
// Individual broken items do not abort the rest of the collection;
// they surface in the report instead.
func (e *Engine) Download(ctx context.Context, req downloader.Request, sink progress.Sink) (*downloader.Report, error) {
	logger := log.FromContext(ctx).WithPrefix("ytdlp")

	cmd := e.buildCommand().
		Output(filepath.Join(req.Dir, "%(title)s.%(ext)s")).
		NoOverwrites().
		IgnoreErrors().
		Format(req.Format.Selector)

	if req.Format.AudioOnly {
		cmd.ExtractAudio().
			AudioFormat("mp3").
			AudioQuality("192K")
	} else {
		cmd.MergeOutputFormat("mp4").
			RecodeVideo("mp4")
	}

	finished := newFinishedSet()
	if sink != nil {
		cmd.ProgressFunc(progressHookInterval, func(prog ytdlp.ProgressUpdate) {
			ev, ok := mapProgress(prog)
			if !ok {
				return
			}
			if ev.Status == progress.StatusFinished {
				finished.add(ev.ItemID)
			}
			sink.OnEvent(ctx, ev)
		})
	}

	logger.Info("starting bulk download", "url", req.URL, "format", req.Format.Selector)
	_, runErr := cmd.Run(ctx, req.URL)

	completed := finished.len()
	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			return nil, runErr
		}
		if completed == 0 {
			return nil, downloader.Classify("bulk download", runErr)
		}
		// Some items made it; with --ignore-errors a nonzero exit
		// usually means a subset failed, which is a reportable partial
		// outcome rather than an error.
		logger.Warn("engine exited with errors after partial completion", "completed", completed, "error", runErr)
		return &downloader.Report{Completed: completed, Failed: 1}, nil
	}

	report := &downloader.Report{Completed: completed}
	return report, nil
}

func (e *Engine) buildCommand() *ytdlp.Command {
	return ytdlp.New().
		NoCallHome().
		Newline().
		Quiet().
		NoWarnings()
}

// mapProgress converts a yt-dlp hook payload into the sink's tagged
// event. Items are keyed by output filename, the one stable identity
// the hook reports across the download of a single item.
func mapProgress(prog ytdlp.ProgressUpdate) (progress.Event, bool) {
	if prog.Filename == "" {
		return progress.Event{}, false
	}

	ev := progress.Event{
		ItemID:     prog.Filename,
		Name:       displayName(prog.Filename),
		Downloaded: int64(prog.DownloadedBytes),
		Total:      int64(prog.TotalBytes),
	}

	switch strings.ToLower(string(prog.Status)) {
	case "downloading":
		ev.Status = progress.StatusDownloading
	case "finished":
		ev.Status = progress.StatusFinished
	default:
		// Forwarded as-is; the tracker ignores what it cannot render.
		ev.Status = progress.EventStatus(prog.Status)
	}
	return ev, true
}

func displayName(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// finishedSet counts distinct finished items across hook callbacks,
// which arrive on the engine's goroutine.
type finishedSet struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

func newFinishedSet() *finishedSet {
	return &finishedSet{ids: make(map[string]struct{})}
}

func (s *finishedSet) add(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[id] = struct{}{}
}

func (s *finishedSet) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}
