package notes

import (
	"strings"
	"time"
)

const (
	webContextPreviewLimit = 200
	previewEllipsis        = "..."
	createdAtDisplayLayout = "Jan 2, 15:04"
)

var zonelessTimestampLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// TruncateWebContext shortens scraped context for the expanded card. Code
// snippets are shown in full and never pass through here.
func TruncateWebContext(text string) string {
	runes := []rune(text)
	if len(runes) <= webContextPreviewLimit {
		return text
	}
	return string(runes[:webContextPreviewLimit]) + previewEllipsis
}

// CategoryLabel is the display form of a category. Only the first
// underscore is replaced; filtering always uses the raw value.
func CategoryLabel(category string) string {
	return strings.Replace(category, "_", " ", 1)
}

func FileBase(path string) string {
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

// FormatCreatedAt renders the service timestamp in local time. Values
// without a zone are read as local time; unparsable values are returned
// unchanged.
func FormatCreatedAt(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return ts.Local().Format(createdAtDisplayLayout)
	}
	for _, layout := range zonelessTimestampLayouts {
		if ts, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return ts.Format(createdAtDisplayLayout)
		}
	}
	return raw
}
