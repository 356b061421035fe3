package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"os"
	"strings"
	"time"

	"github.com/lkalneus/tubefeed/app/cfg"
	"github.com/lkalneus/tubefeed/app/youtube"
)

// originalDescriptionLimit caps the cleaned source description embedded
// in each rendered item.
const originalDescriptionLimit = 500

type Generator struct {
	title           string
	baseUrl         string
	version         string
	summaryMaxWords int
}

func NewGenerator(c *cfg.Cfg) *Generator {
	return &Generator{
		title:           c.FeedTitle,
		baseUrl:         c.BaseUrl,
		version:         c.Version,
		summaryMaxWords: c.SummaryMaxWords,
	}
}

// Run renders the RSS 2.0 document for one cycle's feeds: fixed channel
// metadata followed by one item per video, in the supplied order.
func (g *Generator) Run(feeds []ChannelFeed) (string, error) {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom" xmlns:media="http://search.yahoo.com/mrss/">`)
	buf.WriteString("\n  <channel>\n")

	g.writeElement(&buf, "title", g.title, 4)
	g.writeElement(&buf, "description", "Curated YouTube feeds with clean summaries", 4)
	g.writeElement(&buf, "link", "https://www.youtube.com", 4)
	g.writeElement(&buf, "language", "en-us", 4)
	g.writeElement(&buf, "lastBuildDate", time.Now().UTC().Format(time.RFC1123Z), 4)
	g.writeElement(&buf, "generator", fmt.Sprintf("TubeFeed/%s", g.version), 4)

	selfLink := "https://www.youtube.com"
	if g.baseUrl != "" {
		selfLink = g.baseUrl + "/feed.rss"
	}
	buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
		html.EscapeString(selfLink)))

	for _, channelFeed := range feeds {
		for _, video := range channelFeed.Videos {
			g.writeItem(&buf, channelFeed, video)
		}
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String(), nil
}

// Save renders and writes the RSS document. The rendered text is
// returned even when the write fails so callers can still serve it.
func (g *Generator) Save(feeds []ChannelFeed, path string) (string, error) {
	rss, err := g.Run(feeds)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(rss), 0644); err != nil {
		return rss, fmt.Errorf("failed to write RSS file: %w", err)
	}

	return rss, nil
}

func (g *Generator) writeItem(buf *bytes.Buffer, channelFeed ChannelFeed, video VideoRecord) {
	buf.WriteString("    <item>\n")

	g.writeElement(buf, "title", video.Title, 6)
	g.writeElement(buf, "link", youtube.WatchURL(video.VideoID, video.Link), 6)
	g.writeElement(buf, "description", g.itemDescription(channelFeed, video), 6)
	g.writeElement(buf, "author", channelFeed.ChannelTitle, 6)

	pubDate, ok := ParsePublished(video.Published)
	if !ok {
		pubDate = time.Now().UTC()
	}
	g.writeElement(buf, "pubDate", pubDate.Format(time.RFC1123Z), 6)

	buf.WriteString(`      <guid isPermaLink="true">`)
	xml.EscapeText(buf, []byte(video.Link))
	buf.WriteString("</guid>\n")

	if video.Thumbnail != "" {
		buf.WriteString(fmt.Sprintf("      <media:content url=\"%s\" type=\"image/jpeg\" medium=\"image\" />\n",
			html.EscapeString(video.Thumbnail)))
	}

	g.writeElement(buf, "videoId", video.VideoID, 6)

	buf.WriteString("      <previewLink>")
	xml.EscapeText(buf, []byte(video.Link))
	buf.WriteString("</previewLink>\n")

	buf.WriteString("    </item>\n")
}

// itemDescription composes the HTML fragment shown by feed readers:
// channel name, bounded summary, video ID, and a length-capped copy of
// the cleaned original description.
func (g *Generator) itemDescription(channelFeed ChannelFeed, video VideoRecord) string {
	original := CleanDescription(video.Description)
	if runes := []rune(original); len(runes) > originalDescriptionLimit {
		original = string(runes[:originalDescriptionLimit]) + "..."
	}

	parts := []string{
		"<strong>Channel:</strong> " + channelFeed.ChannelTitle,
		"<strong>Summary:</strong> " + Summarize(video.Description, g.summaryMaxWords),
		"<strong>Video ID:</strong> " + video.VideoID,
		"<strong>Original Description:</strong> " + original,
	}

	return strings.Join(parts, "<br/><br/>")
}

func (g *Generator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}
