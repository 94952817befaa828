// Package downloader owns the lifecycle of one playlist-download job:
// metadata resolution, destination preparation, and the retrying bulk
// retrieval through the extraction engine.
package downloader

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"
)

// playlistURLMarkers is the accepted playlist-URL shape.
var playlistURLMarkers = []string{
	"youtube.com/playlist?",
	"youtu.be/playlist?",
}

// IsPlaylistURL reports whether text contains a recognizable playlist
// URL.
func IsPlaylistURL(text string) bool {
	for _, marker := range playlistURLMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// Job is one playlist-download request. It lives from quality
// selection until a terminal outcome and is never persisted.
type Job struct {
	ID        string
	URL       string
	Quality   string
	Format    FormatSelection
	CreatedAt time.Time

	// Resolved during metadata resolution.
	Title string
	Items []ItemMeta
	Dir   string
}

// NewJob validates the request and resolves the quality token.
func NewJob(url, quality string) (*Job, error) {
	url = strings.TrimSpace(url)
	if !IsPlaylistURL(url) {
		return nil, NewJobError(ErrorCodeInvalidInput, "validate url",
			fmt.Errorf("not a playlist url: %s", truncate(url, 80)))
	}
	format, err := SelectFormat(quality)
	if err != nil {
		return nil, err
	}
	return &Job{
		ID:        xid.New().String(),
		URL:       url,
		Quality:   quality,
		Format:    format,
		CreatedAt: time.Now(),
	}, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
