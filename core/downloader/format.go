package downloader

import (
	"fmt"
	"strconv"
)

// FormatSelection is the resolved yt-dlp format policy for one quality
// token.
type FormatSelection struct {
	Selector string
	// AudioOnly asks the engine to post-process into an mp3 container
	// instead of merging video streams.
	AudioOnly bool
}

// SelectFormat maps a quality token to its selection policy:
//
//	numeric height  best video at or below that height plus best
//	                compatible audio, falling back to best overall at
//	                or below that height
//	best            best available video+audio, falling back to best
//	audio           best audio-only stream, extracted to mp3
//
// Anything else is an invalid-input error.
func SelectFormat(quality string) (FormatSelection, error) {
	switch quality {
	case "best":
		return FormatSelection{
			Selector: "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best",
		}, nil
	case "audio":
		return FormatSelection{
			Selector:  "bestaudio/best",
			AudioOnly: true,
		}, nil
	}

	height, err := strconv.Atoi(quality)
	if err != nil || height <= 0 {
		return FormatSelection{}, NewJobError(
			ErrorCodeInvalidInput,
			"select format",
			fmt.Errorf("invalid quality selector %q", quality),
		)
	}
	return FormatSelection{
		Selector: fmt.Sprintf(
			"bestvideo[height<=%d][ext=mp4]+bestaudio[ext=m4a]/best[height<=%d]/best",
			height, height,
		),
	}, nil
}
