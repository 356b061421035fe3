package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lkalneus/tubefeed/app/cfg"
	"github.com/lkalneus/tubefeed/app/feed"
	"github.com/lkalneus/tubefeed/app/youtube"
)

const (
	defaultAPIURL = "https://api.notion.com/v1/pages"
	apiVersion    = "2022-06-28"

	// Notion rejects rich text content beyond this length.
	maxTextLength = 2000

	emptyPageText = "No videos were fetched for this period."
)

// Publisher creates one Notion page per fetch cycle summarizing every
// channel and video. It is inactive until both credentials are set.
type Publisher struct {
	httpClient      *http.Client
	apiURL          string
	apiKey          string
	databaseID      string
	pageTitlePrefix string
	dateProperty    string
	summaryMaxWords int
	timeout         time.Duration
}

func NewPublisher(c *cfg.Cfg) *Publisher {
	return &Publisher{
		httpClient:      &http.Client{},
		apiURL:          defaultAPIURL,
		apiKey:          c.NotionAPIKey,
		databaseID:      c.NotionDatabaseID,
		pageTitlePrefix: c.NotionPageTitlePrefix,
		dateProperty:    c.NotionDateProperty,
		summaryMaxWords: c.SummaryMaxWords,
		timeout:         30 * time.Second,
	}
}

// IsConfigured reports whether both the integration token and the
// destination database ID are present.
func (p *Publisher) IsConfigured() bool {
	return p.apiKey != "" && p.databaseID != ""
}

// Publish submits the page as a single authenticated POST. The page is
// created whole or not at all; there is no retry.
func (p *Publisher) Publish(ctx context.Context, feeds []feed.ChannelFeed) error {
	if !p.IsConfigured() {
		return fmt.Errorf("notion integration is not configured")
	}

	payload, err := json.Marshal(p.buildPage(feeds))
	if err != nil {
		return fmt.Errorf("failed to marshal page payload: %w", err)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "POST", p.apiURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Notion-Version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach notion API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("notion API error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return nil
}

func (p *Publisher) buildPage(feeds []feed.ChannelFeed) page {
	properties := map[string]property{
		"Name": {Title: []richText{newText(p.pageTitle(), "")}},
	}

	if p.dateProperty != "" {
		properties[p.dateProperty] = property{
			Date: &dateValue{Start: time.Now().Format(time.RFC3339)},
		}
	}

	return page{
		Parent:     parent{DatabaseID: p.databaseID},
		Properties: properties,
		Children:   p.buildBlocks(feeds),
	}
}

// pageTitle combines the configured prefix with the current date in the
// display timezone.
func (p *Publisher) pageTitle() string {
	return fmt.Sprintf("%s - %s", p.pageTitlePrefix, time.Now().Format("2006-01-02"))
}

// buildBlocks renders one heading per channel followed by the blocks
// for each of its videos. Channels without videos are skipped entirely;
// a trailing divider is removed so the page does not end with one.
func (p *Publisher) buildBlocks(feeds []feed.ChannelFeed) []block {
	blocks := []block{}

	for _, channelFeed := range feeds {
		if len(channelFeed.Videos) == 0 {
			continue
		}

		blocks = append(blocks, block{
			Type: "heading_2",
			Heading2: &richBlock{
				RichText: []richText{newText(truncate(channelFeed.ChannelTitle), "")},
			},
		})

		for _, video := range channelFeed.Videos {
			blocks = append(blocks, p.videoBlocks(channelFeed, video)...)
		}
	}

	if len(blocks) > 0 && blocks[len(blocks)-1].Type == "divider" {
		blocks = blocks[:len(blocks)-1]
	}

	if len(blocks) == 0 {
		blocks = append(blocks, paragraphBlock(emptyPageText, ""))
	}

	return blocks
}

func (p *Publisher) videoBlocks(channelFeed feed.ChannelFeed, video feed.VideoRecord) []block {
	watchURL := youtube.ShortURL(video.VideoID, video.Link)
	previewURL := youtube.EmbedURL(video.VideoID, video.Link)
	summary := feed.Summarize(video.Description, p.summaryMaxWords)

	blocks := []block{
		{
			Type: "heading_3",
			Heading3: &richBlock{
				RichText: []richText{newText(truncate(video.Title), watchURL)},
			},
		},
		paragraphBlock(truncate("Channel: "+channelFeed.ChannelTitle), ""),
		paragraphBlock(truncate("Summary: "+summary), ""),
	}

	if previewURL != "" {
		blocks = append(blocks,
			block{
				Type:  "video",
				Video: &videoBlock{Type: "external", External: link{URL: previewURL}},
			},
			paragraphBlock("Preview link", previewURL),
		)
	}

	if watchURL != "" {
		blocks = append(blocks, paragraphBlock("Open in YouTube app", watchURL))
	}

	return append(blocks, block{Type: "divider", Divider: &struct{}{}})
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= maxTextLength {
		return s
	}

	return string(runes[:maxTextLength])
}
