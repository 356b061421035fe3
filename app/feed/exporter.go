package feed

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type Exporter struct{}

func NewExporter() *Exporter {
	return &Exporter{}
}

// Run wraps the feeds with the fetch timestamp and channel count and
// marshals the document with two-space indentation. Struct field order
// keeps the key ordering deterministic.
func (e *Exporter) Run(feeds []ChannelFeed) ([]byte, error) {
	export := Export{
		FetchedAt:     time.Now().UTC().Format(time.RFC3339),
		TotalChannels: len(feeds),
		Feeds:         feeds,
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export: %w", err)
	}

	return data, nil
}

// Save renders and writes the export document, overwriting any previous
// file at path. The rendered bytes are returned even when the write
// fails so callers can still serve them.
func (e *Exporter) Save(feeds []ChannelFeed, path string) ([]byte, error) {
	data, err := e.Run(feeds)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return data, fmt.Errorf("failed to write export file: %w", err)
	}

	return data, nil
}
