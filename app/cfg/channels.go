package cfg

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type channelsFile struct {
	Channels []Channel `yaml:"channels"`
}

func loadChannelsFile(path string) ([]Channel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var parsed channelsFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return parsed.Channels, nil
}

func parseChannelList(raw string) []Channel {
	channels := make([]Channel, 0)

	for _, id := range strings.Split(raw, ",") {
		channels = append(channels, Channel{ID: id})
	}

	return channels
}

// dedupeChannels trims IDs, drops blanks, and keeps the first occurrence
// of each ID. Order is preserved.
func dedupeChannels(channels []Channel) []Channel {
	seen := make(map[string]bool, len(channels))
	result := make([]Channel, 0, len(channels))

	for _, ch := range channels {
		ch.ID = strings.TrimSpace(ch.ID)
		if ch.ID == "" || seen[ch.ID] {
			continue
		}

		seen[ch.ID] = true
		result = append(result, ch)
	}

	return result
}
