package youtube

import (
	"fmt"
	"strings"
)

const feedURLTemplate = "https://www.youtube.com/feeds/videos.xml?channel_id=%s"

// FeedURL returns the RSS feed URL for a channel ID.
func FeedURL(channelID string) string {
	return fmt.Sprintf(feedURLTemplate, channelID)
}

// ExtractVideoID pulls the video identifier out of a watch URL: the text
// after the first "v=" up to the next "&". Returns an empty string when
// the URL carries no "v=" parameter. Never fails.
func ExtractVideoID(link string) string {
	_, after, found := strings.Cut(link, "v=")
	if !found {
		return ""
	}

	id, _, _ := strings.Cut(after, "&")
	return id
}

// WatchURL returns the canonical watch URL for a video ID, or the
// fallback link when no ID is available.
func WatchURL(videoID string, fallback string) string {
	if videoID == "" {
		return fallback
	}
	return "https://www.youtube.com/watch?v=" + videoID
}

// ShortURL returns the youtu.be link for a video ID, or the fallback.
// Opens the video directly in the YouTube app on mobile.
func ShortURL(videoID string, fallback string) string {
	if videoID == "" {
		return fallback
	}
	return "https://youtu.be/" + videoID
}

// EmbedURL returns the embeddable player URL for a video ID, or the
// fallback.
func EmbedURL(videoID string, fallback string) string {
	if videoID == "" {
		return fallback
	}
	return "https://www.youtube.com/embed/" + videoID
}

// ThumbnailURL synthesizes the max-resolution thumbnail URL for a video
// ID. Returns an empty string for an empty ID.
func ThumbnailURL(videoID string) string {
	if videoID == "" {
		return ""
	}
	return fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", videoID)
}
