package progress

import (
	"fmt"
	"strings"
)

const (
	progressBarWidth = 20
	nameDisplayLimit = 50
)

// renderDownloading builds the status text for one item. The layout
// follows the three-line card the bot has always sent: name, bar with
// percentage, speed and ETA.
func renderDownloading(name string, downloaded, total int64, speed float64) string {
	percent := percentOf(downloaded, total)

	eta := int64(-1)
	if speed > 0 && total > downloaded {
		eta = int64(float64(total-downloaded) / speed)
	}

	return fmt.Sprintf(
		"Downloading: %s...\n\n%s %.1f%%\nSpeed: %s | ETA: %s",
		truncateName(name, nameDisplayLimit),
		renderBar(percent),
		percent,
		formatSpeed(speed),
		FormatETA(eta),
	)
}

func renderFinished(name string) string {
	return "Download complete: " + name
}

// percentOf is 0 when the total size is still unknown.
func percentOf(downloaded, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(downloaded) / float64(total) * 100
}

// renderBar scales percent onto a fixed 20-slot bar.
func renderBar(percent float64) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 5)
	return strings.Repeat("█", filled) + strings.Repeat("░", progressBarWidth-filled)
}

// formatSpeed renders bytes/second as KB/s below one MiB/s, MB/s above.
func formatSpeed(bytesPerSec float64) string {
	kbps := bytesPerSec / 1024
	if kbps < 1024 {
		return fmt.Sprintf("%.1f KB/s", kbps)
	}
	return fmt.Sprintf("%.1f MB/s", kbps/1024)
}

// FormatETA renders seconds as "Hh Mm Ss", dropping leading zero
// units. Negative input means the ETA is unknown.
func FormatETA(seconds int64) string {
	if seconds < 0 {
		return "Unknown"
	}
	minutes, secs := seconds/60, seconds%60
	hours, mins := minutes/60, minutes%60
	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, mins, secs)
	case mins > 0:
		return fmt.Sprintf("%dm %ds", mins, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}

func truncateName(name string, limit int) string {
	runes := []rune(name)
	if len(runes) <= limit {
		return name
	}
	return string(runes[:limit])
}
