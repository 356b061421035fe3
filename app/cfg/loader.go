package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Channel configuration
	Channels     string `long:"channels" env:"YOUTUBE_CHANNELS" default:"UCBJycsmduvYEL83R_U4JriQ,UCrqM0Ym_NbK1fqeQG2VIohg" description:"Comma-separated list of YouTube channel IDs"`
	ChannelsFile string `long:"channels-file" env:"CHANNELS_FILE" description:"Optional YAML file with additional channels"`

	// Output configuration
	OutputFile    string `long:"output-file" env:"OUTPUT_FILE" default:"feeds.json" description:"Path for the JSON export"`
	RSSOutputFile string `long:"rss-output-file" env:"RSS_OUTPUT_FILE" default:"youtube_feeds.rss" description:"Path for the rendered RSS document"`
	FeedTitle     string `long:"feed-title" env:"FEED_TITLE" default:"My YouTube Feeds" description:"Channel title for the rendered RSS document"`

	// Fetch configuration
	FetchTimeout    int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"30" description:"Per-request fetch timeout in seconds"`
	WorkerCount     int    `long:"worker-count" env:"WORKER_COUNT" default:"5" description:"Number of concurrent channel fetches"`
	SummaryMaxWords int    `long:"summary-max-words" env:"SUMMARY_MAX_WORDS" default:"200" description:"Maximum number of words in generated summaries"`
	UserAgent       string `long:"user-agent" env:"USER_AGENT" default:"TubeFeed/1.0" description:"User agent string for HTTP requests"`

	// Notion integration
	NotionAPIKey          string `long:"notion-api-key" env:"NOTION_API_KEY" description:"Notion integration token (optional)"`
	NotionDatabaseID      string `long:"notion-database-id" env:"NOTION_DATABASE_ID" description:"Notion database ID for published pages (optional)"`
	NotionPageTitlePrefix string `long:"notion-page-title-prefix" env:"NOTION_PAGE_TITLE_PREFIX" default:"Daily YouTube Feed" description:"Prefix for Notion page titles"`
	NotionDateProperty    string `long:"notion-date-property" env:"NOTION_DATE_PROPERTY" description:"Name of a date property to set on published pages (optional)"`

	// HTTP server configuration
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl      string `long:"base-url" env:"BASE_URL" description:"Public base URL for the service (e.g., https://feeds.example.com)"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`

	// Scheduling
	Once         bool   `long:"once" description:"Run a single fetch cycle and exit"`
	ScheduleTime string `long:"schedule-time" env:"SCHEDULE_TIME" default:"09:00" description:"Daily fetch time in HH:MM format"`

	// Application metadata
	Timezone string `long:"timezone" env:"TIMEZONE" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	LogFile  string `long:"log-file" env:"LOG_FILE" description:"Additional log file path (optional)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	channels := parseChannelList(raw.Channels)
	if raw.ChannelsFile != "" {
		fromFile, err := loadChannelsFile(raw.ChannelsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load channels file: %w", err)
		}
		channels = append(channels, fromFile...)
	}

	cfg := &Cfg{
		Channels:              dedupeChannels(channels),
		ChannelsFile:          raw.ChannelsFile,
		OutputFile:            raw.OutputFile,
		RSSOutputFile:         raw.RSSOutputFile,
		FeedTitle:             raw.FeedTitle,
		FetchTimeout:          raw.FetchTimeout,
		WorkerCount:           raw.WorkerCount,
		SummaryMaxWords:       raw.SummaryMaxWords,
		UserAgent:             raw.UserAgent,
		NotionAPIKey:          raw.NotionAPIKey,
		NotionDatabaseID:      raw.NotionDatabaseID,
		NotionPageTitlePrefix: raw.NotionPageTitlePrefix,
		NotionDateProperty:    raw.NotionDateProperty,
		Port:                  raw.Port,
		BaseUrl:               raw.BaseUrl,
		APIAccessKey:          raw.APIAccessKey,
		Once:                  raw.Once,
		ScheduleTime:          raw.ScheduleTime,
		Timezone:              raw.Timezone,
		LogFile:               raw.LogFile,
		Debug:                 raw.Debug,
		Version:               GetVersion(),
	}

	if _, _, err := ParseScheduleTime(cfg.ScheduleTime); err != nil {
		return nil, fmt.Errorf("invalid schedule time '%s': %w", cfg.ScheduleTime, err)
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using UTC: %v\n", cfg.Timezone, err)
	}

	return cfg, nil
}

// ParseScheduleTime validates and splits an HH:MM daily trigger time.
func ParseScheduleTime(s string) (int, int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, err
	}
	return t.Hour(), t.Minute(), nil
}

func applyTimezone(timezone string) error {
	if timezone == "" {
		return nil
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		time.Local = time.UTC
		return err
	}

	time.Local = loc

	return nil
}
