package feed

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/lkalneus/tubefeed/app/cfg"
	"github.com/lkalneus/tubefeed/app/youtube"
	"github.com/mmcdole/gofeed"
)

type Fetcher struct {
	httpClient  *http.Client
	userAgent   string
	timeout     time.Duration
	workerCount int
	feedURL     func(channelID string) string
}

func NewFetcher(c *cfg.Cfg) *Fetcher {
	return &Fetcher{
		httpClient:  &http.Client{},
		userAgent:   c.UserAgent,
		timeout:     time.Duration(c.FetchTimeout) * time.Second,
		workerCount: c.WorkerCount,
		feedURL:     youtube.FeedURL,
	}
}

// FetchChannel retrieves and parses the feed for a single channel ID.
// A network failure, non-200 response, or unparseable document fails
// the whole channel; there is no partial result.
func (f *Fetcher) FetchChannel(ctx context.Context, channelID string) (*ChannelFeed, error) {
	data, err := f.fetchFeed(ctx, f.feedURL(channelID))
	if err != nil {
		return nil, err
	}

	// gofeed parsers keep lazily-built state, so each fetch gets its own
	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	channelFeed := &ChannelFeed{
		ChannelID:    channelID,
		ChannelTitle: cmp.Or(parsed.Title, UnknownChannelTitle),
		ChannelLink:  parsed.Link,
		FetchedAt:    time.Now().UTC(),
		Videos:       make([]VideoRecord, 0, len(parsed.Items)),
	}

	for _, item := range parsed.Items {
		channelFeed.Videos = append(channelFeed.Videos, normalizeEntry(item))
	}

	return channelFeed, nil
}

// Run fetches every configured channel with a bounded worker pool.
// Failed channels are logged and omitted; the returned slice keeps the
// configured channel order, not completion order.
func (f *Fetcher) Run(ctx context.Context, channels []cfg.Channel) []ChannelFeed {
	targets := make([]cfg.Channel, 0, len(channels))
	for _, ch := range channels {
		ch.ID = strings.TrimSpace(ch.ID)
		if ch.ID == "" {
			continue
		}
		targets = append(targets, ch)
	}

	if len(targets) == 0 {
		return nil
	}

	workers := f.workerCount
	if workers < 1 {
		workers = 1
	}
	if workers > len(targets) {
		workers = len(targets)
	}

	results := make([]*ChannelFeed, len(targets))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				target := targets[idx]
				slog.Debug("Fetching channel feed", "channel", target.ID)

				channelFeed, err := f.FetchChannel(ctx, target.ID)
				if err != nil {
					slog.Error("Channel fetch failed", "channel", target.ID, "error", err)
					continue
				}

				if channelFeed.ChannelTitle == UnknownChannelTitle && target.Label != "" {
					channelFeed.ChannelTitle = target.Label
				}

				results[idx] = channelFeed
			}
		}()
	}

	for idx := range targets {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	feeds := make([]ChannelFeed, 0, len(targets))
	for _, result := range results {
		if result != nil {
			feeds = append(feeds, *result)
		}
	}

	return feeds
}

func (f *Fetcher) fetchFeed(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

// normalizeEntry maps a parsed feed entry to the canonical record
// shape, applying the field defaults and URL derivations.
func normalizeEntry(item *gofeed.Item) VideoRecord {
	videoID := youtube.ExtractVideoID(item.Link)

	return VideoRecord{
		Title:       cmp.Or(item.Title, UntitledVideo),
		Link:        item.Link,
		Published:   item.Published,
		Description: cmp.Or(item.Description, mediaDescription(item)),
		VideoID:     videoID,
		Thumbnail:   cmp.Or(mediaThumbnail(item), youtube.ThumbnailURL(videoID)),
	}
}

// mediaThumbnail pulls the thumbnail URL out of the entry's Media RSS
// extension, checking media:group children first, then a direct
// media:thumbnail.
func mediaThumbnail(item *gofeed.Item) string {
	for _, group := range item.Extensions["media"]["group"] {
		for _, thumb := range group.Children["thumbnail"] {
			if url := thumb.Attrs["url"]; url != "" {
				return url
			}
		}
	}

	for _, thumb := range item.Extensions["media"]["thumbnail"] {
		if url := thumb.Attrs["url"]; url != "" {
			return url
		}
	}

	return ""
}

// mediaDescription recovers the description from the Media RSS
// extension for sources that carry no plain summary element.
func mediaDescription(item *gofeed.Item) string {
	for _, group := range item.Extensions["media"]["group"] {
		for _, desc := range group.Children["description"] {
			if desc.Value != "" {
				return desc.Value
			}
		}
	}

	return ""
}
