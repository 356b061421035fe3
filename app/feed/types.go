package feed

import (
	"time"
)

// Placeholders substituted at normalization time when the source
// document omits a field.
const (
	UnknownChannelTitle = "Unknown Channel"
	UntitledVideo       = "Untitled Video"
)

// ChannelFeed is the result of one channel fetch: normalized channel
// metadata plus its videos in source document order. Records are
// immutable once constructed and live only for the duration of a cycle.
type ChannelFeed struct {
	ChannelID    string        `json:"channel_id"`
	ChannelTitle string        `json:"channel_title"`
	ChannelLink  string        `json:"channel_link"`
	FetchedAt    time.Time     `json:"fetched_at"`
	Videos       []VideoRecord `json:"videos"`
}

// VideoRecord is the canonical representation of a single feed entry.
// Published keeps the raw source string; the renderers parse it on
// demand. Description keeps the raw, possibly HTML-bearing text.
type VideoRecord struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Published   string `json:"published"`
	Description string `json:"description"`
	VideoID     string `json:"video_id"`
	Thumbnail   string `json:"thumbnail"`
}

// Export is the persisted JSON document wrapping one cycle's feeds.
type Export struct {
	FetchedAt     string        `json:"fetched_at"`
	TotalChannels int           `json:"total_channels"`
	Feeds         []ChannelFeed `json:"feeds"`
}
