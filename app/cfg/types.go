package cfg

// Channel is a single feed source: the external channel ID plus an
// optional display label used when the fetched document has no title.
type Channel struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

type Cfg struct {
	// Channel configuration
	Channels     []Channel
	ChannelsFile string

	// Output configuration
	OutputFile    string
	RSSOutputFile string
	FeedTitle     string

	// Fetch configuration
	FetchTimeout    int
	WorkerCount     int
	SummaryMaxWords int
	UserAgent       string

	// Notion integration
	NotionAPIKey          string
	NotionDatabaseID      string
	NotionPageTitlePrefix string
	NotionDateProperty    string

	// HTTP server configuration
	Port         string
	BaseUrl      string
	APIAccessKey string

	// Scheduling
	Once         bool
	ScheduleTime string

	// Application metadata
	Timezone string
	LogFile  string
	Debug    bool
	Version  string
}
