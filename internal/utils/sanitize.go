package utils

import "github.com/microcosm-cc/bluemonday"

// Announcement and message bodies come in from a rich-text editor, so
// they may carry arbitrary markup. The UGC policy keeps basic
// formatting tags and strips anything script-bearing. Sanitizing
// already-sanitized text is a no-op.
var sanitizePolicy = bluemonday.UGCPolicy()

func SanitizeText(dirty string) string {
	return sanitizePolicy.Sanitize(dirty)
}
