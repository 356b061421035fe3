package notion

// Wire types for the pages endpoint. Field names follow the Notion API
// block object schema; only the block variants this service emits are
// modeled.

type page struct {
	Parent     parent              `json:"parent"`
	Properties map[string]property `json:"properties"`
	Children   []block             `json:"children"`
}

type parent struct {
	DatabaseID string `json:"database_id"`
}

type property struct {
	Title []richText `json:"title,omitempty"`
	Date  *dateValue `json:"date,omitempty"`
}

type dateValue struct {
	Start string `json:"start"`
}

type block struct {
	Type      string      `json:"type"`
	Heading2  *richBlock  `json:"heading_2,omitempty"`
	Heading3  *richBlock  `json:"heading_3,omitempty"`
	Paragraph *richBlock  `json:"paragraph,omitempty"`
	Video     *videoBlock `json:"video,omitempty"`
	Divider   *struct{}   `json:"divider,omitempty"`
}

type richBlock struct {
	RichText []richText `json:"rich_text"`
}

type videoBlock struct {
	Type     string `json:"type"`
	External link   `json:"external"`
}

type richText struct {
	Type string    `json:"type"`
	Text textValue `json:"text"`
}

type textValue struct {
	Content string `json:"content"`
	Link    *link  `json:"link,omitempty"`
}

type link struct {
	URL string `json:"url"`
}

func newText(content, url string) richText {
	text := richText{Type: "text", Text: textValue{Content: content}}
	if url != "" {
		text.Text.Link = &link{URL: url}
	}

	return text
}

func paragraphBlock(content, url string) block {
	return block{
		Type:      "paragraph",
		Paragraph: &richBlock{RichText: []richText{newText(content, url)}},
	}
}
