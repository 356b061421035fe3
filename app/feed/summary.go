package feed

import (
	"html"
	"regexp"
	"strings"
	"time"
)

// NoDescription is rendered wherever a summary is expected but the
// source entry carries no usable description.
const NoDescription = "No description available."

var (
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// CleanDescription strips HTML tags and collapses whitespace runs to
// single spaces. Used by the renderers; the raw description stays on
// the record untouched.
func CleanDescription(s string) string {
	clean := tagPattern.ReplaceAllString(s, "")
	clean = whitespacePattern.ReplaceAllString(clean, " ")

	return strings.TrimSpace(clean)
}

// Summarize decodes HTML entities, cleans the text, and caps it at
// maxWords words, appending an ellipsis when truncated. Empty input
// yields the NoDescription sentinel, never an empty string.
func Summarize(s string, maxWords int) string {
	text := CleanDescription(html.UnescapeString(s))
	if text == "" {
		return NoDescription
	}

	words := strings.Fields(text)
	if len(words) <= maxWords {
		return text
	}

	return strings.Join(words[:maxWords], " ") + "..."
}

// publishedFormats are tried in order; the first match wins.
var publishedFormats = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05",
}

// ParsePublished attempts the known source date formats against a raw
// published string. The boolean reports whether any format matched;
// callers decide what to substitute for unparseable input.
func ParsePublished(s string) (time.Time, bool) {
	for _, format := range publishedFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
