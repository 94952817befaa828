package fsutil

import (
	"os"
	"strings"
)

const maxFilenameLength = 100

// SanitizeFilename maps an arbitrary title to a safe path segment:
// characters illegal in filesystem paths are stripped, surrounding
// whitespace is trimmed and the result is capped at 100 runes.
// The function is idempotent.
func SanitizeFilename(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '\\', '/', '*', '?', ':', '"', '<', '>', '|':
			return -1
		}
		return r
	}, name)

	cleaned = strings.TrimSpace(cleaned)

	runes := []rune(cleaned)
	if len(runes) > maxFilenameLength {
		cleaned = string(runes[:maxFilenameLength])
		// Truncation may expose trailing whitespace again.
		cleaned = strings.TrimSpace(cleaned)
	}
	return cleaned
}

// EnsureDir creates dir and any missing parents. An already existing
// directory is not an error.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
