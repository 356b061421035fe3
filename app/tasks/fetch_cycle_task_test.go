package tasks

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lkalneus/tubefeed/app/cfg"
	"github.com/lkalneus/tubefeed/app/feed"
)

// MockFetcher implements a simple mock for testing
type MockFetcher struct {
	feeds []feed.ChannelFeed
	calls int
}

var _ FetcherInterface = (*MockFetcher)(nil)

func (m *MockFetcher) Run(ctx context.Context, channels []cfg.Channel) []feed.ChannelFeed {
	m.calls++
	return m.feeds
}

// MockExporter implements a simple mock for testing
type MockExporter struct {
	document []byte
	err      error
	paths    []string
}

var _ ExporterInterface = (*MockExporter)(nil)

func (m *MockExporter) Save(feeds []feed.ChannelFeed, path string) ([]byte, error) {
	m.paths = append(m.paths, path)
	return m.document, m.err
}

// MockGenerator implements a simple mock for testing
type MockGenerator struct {
	document string
	err      error
	paths    []string
}

var _ GeneratorInterface = (*MockGenerator)(nil)

func (m *MockGenerator) Save(feeds []feed.ChannelFeed, path string) (string, error) {
	m.paths = append(m.paths, path)
	return m.document, m.err
}

// MockPublisher implements a simple mock for testing
type MockPublisher struct {
	configured bool
	err        error
	published  int
}

var _ PublisherInterface = (*MockPublisher)(nil)

func (m *MockPublisher) IsConfigured() bool {
	return m.configured
}

func (m *MockPublisher) Publish(ctx context.Context, feeds []feed.ChannelFeed) error {
	m.published++
	return m.err
}

func testTaskConfig() *cfg.Cfg {
	return &cfg.Cfg{
		Channels: []cfg.Channel{
			{ID: "UCtech", Label: "Tech Reviews"},
		},
		OutputFile:    "feeds.json",
		RSSOutputFile: "youtube_feeds.rss",
	}
}

func sampleChannelFeeds() []feed.ChannelFeed {
	return []feed.ChannelFeed{
		{
			ChannelID:    "UCtech",
			ChannelTitle: "Tech Reviews",
			Videos: []feed.VideoRecord{
				{VideoID: "abc123", Title: "First Video"},
				{VideoID: "def456", Title: "Second Video"},
			},
		},
	}
}

func TestFetchCycleTaskExecute(t *testing.T) {
	fetcher := &MockFetcher{feeds: sampleChannelFeeds()}
	exporter := &MockExporter{document: []byte(`{"total_channels": 1}`)}
	generator := &MockGenerator{document: "<rss></rss>"}
	publisher := &MockPublisher{configured: true}
	snapshot := feed.NewSnapshot()

	task := NewFetchCycleTask(testTaskConfig(), fetcher, exporter, generator, publisher, snapshot)
	task.Start()

	err := task.Execute(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if fetcher.calls != 1 {
		t.Errorf("Expected 1 fetcher call, got %d", fetcher.calls)
	}

	if len(exporter.paths) != 1 || exporter.paths[0] != "feeds.json" {
		t.Errorf("Expected export to feeds.json, got %v", exporter.paths)
	}

	if len(generator.paths) != 1 || generator.paths[0] != "youtube_feeds.rss" {
		t.Errorf("Expected RSS output to youtube_feeds.rss, got %v", generator.paths)
	}

	if publisher.published != 1 {
		t.Errorf("Expected 1 publish call, got %d", publisher.published)
	}

	stats, ok := snapshot.Stats()
	if !ok {
		t.Fatal("Expected snapshot to be populated after the cycle")
	}

	if stats.CycleID != task.GetID() {
		t.Errorf("Expected snapshot cycle ID %s, got %s", task.GetID(), stats.CycleID)
	}

	if stats.ChannelCount != 1 {
		t.Errorf("Expected 1 channel in snapshot, got %d", stats.ChannelCount)
	}

	if stats.VideoCount != 2 {
		t.Errorf("Expected 2 videos in snapshot, got %d", stats.VideoCount)
	}

	rss, ok := snapshot.RSS()
	if !ok || rss != "<rss></rss>" {
		t.Errorf("Expected snapshot to hold the RSS document, got %q", rss)
	}
}

func TestFetchCycleTaskNoFeeds(t *testing.T) {
	fetcher := &MockFetcher{}
	exporter := &MockExporter{}
	generator := &MockGenerator{}
	publisher := &MockPublisher{configured: true}
	snapshot := feed.NewSnapshot()

	task := NewFetchCycleTask(testTaskConfig(), fetcher, exporter, generator, publisher, snapshot)

	err := task.Execute(context.Background())
	if err == nil {
		t.Fatal("Expected error when no feeds could be fetched")
	}

	if !strings.Contains(err.Error(), "no channel feeds") {
		t.Errorf("Expected fetch failure message, got %v", err)
	}

	if len(exporter.paths) != 0 {
		t.Error("Expected no export when fetching produced nothing")
	}

	if publisher.published != 0 {
		t.Error("Expected no publish when fetching produced nothing")
	}

	if _, ok := snapshot.Stats(); ok {
		t.Error("Expected snapshot to stay empty after a failed cycle")
	}
}

func TestFetchCycleTaskCollectsSinkFailures(t *testing.T) {
	exportErr := errors.New("disk full")
	fetcher := &MockFetcher{feeds: sampleChannelFeeds()}
	exporter := &MockExporter{document: []byte(`{}`), err: exportErr}
	generator := &MockGenerator{document: "<rss></rss>"}
	publisher := &MockPublisher{configured: false}
	snapshot := feed.NewSnapshot()

	task := NewFetchCycleTask(testTaskConfig(), fetcher, exporter, generator, publisher, snapshot)

	err := task.Execute(context.Background())
	if !errors.Is(err, exportErr) {
		t.Errorf("Expected export failure to surface, got %v", err)
	}

	// A failed export must not prevent the RSS output
	if len(generator.paths) != 1 {
		t.Errorf("Expected generator to run despite export failure, got %d calls", len(generator.paths))
	}

	// The snapshot still receives the documents returned alongside the error
	if rss, ok := snapshot.RSS(); !ok || rss != "<rss></rss>" {
		t.Errorf("Expected snapshot to hold the RSS document, got %q", rss)
	}
}

func TestFetchCycleTaskSkipsUnconfiguredPublisher(t *testing.T) {
	fetcher := &MockFetcher{feeds: sampleChannelFeeds()}
	exporter := &MockExporter{document: []byte(`{}`)}
	generator := &MockGenerator{document: "<rss></rss>"}
	publisher := &MockPublisher{configured: false}
	snapshot := feed.NewSnapshot()

	task := NewFetchCycleTask(testTaskConfig(), fetcher, exporter, generator, publisher, snapshot)

	err := task.Execute(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if publisher.published != 0 {
		t.Errorf("Expected no publish calls, got %d", publisher.published)
	}
}

func TestFetchCycleTaskPublisherFailure(t *testing.T) {
	publishErr := errors.New("notion API error (400): validation failed")
	fetcher := &MockFetcher{feeds: sampleChannelFeeds()}
	exporter := &MockExporter{document: []byte(`{}`)}
	generator := &MockGenerator{document: "<rss></rss>"}
	publisher := &MockPublisher{configured: true, err: publishErr}
	snapshot := feed.NewSnapshot()

	task := NewFetchCycleTask(testTaskConfig(), fetcher, exporter, generator, publisher, snapshot)

	err := task.Execute(context.Background())
	if !errors.Is(err, publishErr) {
		t.Errorf("Expected publish failure to surface, got %v", err)
	}

	// Local outputs landed before the publish attempt
	if len(exporter.paths) != 1 || len(generator.paths) != 1 {
		t.Error("Expected both local outputs to be written before publishing")
	}
}

func TestFetchCycleTaskCancelledContext(t *testing.T) {
	fetcher := &MockFetcher{feeds: sampleChannelFeeds()}
	exporter := &MockExporter{}
	generator := &MockGenerator{}
	publisher := &MockPublisher{}
	snapshot := feed.NewSnapshot()

	task := NewFetchCycleTask(testTaskConfig(), fetcher, exporter, generator, publisher, snapshot)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := task.Execute(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}

	if fetcher.calls != 0 {
		t.Errorf("Expected no fetch on cancelled context, got %d calls", fetcher.calls)
	}
}

func TestNewFetchCycleTask(t *testing.T) {
	task := NewFetchCycleTask(testTaskConfig(), &MockFetcher{}, &MockExporter{}, &MockGenerator{}, &MockPublisher{}, feed.NewSnapshot())

	if task.GetType() != TaskTypeFetchCycle {
		t.Errorf("Expected task type %s, got %s", TaskTypeFetchCycle, task.GetType())
	}

	if task.GetID() == "" {
		t.Error("Expected task to have an ID")
	}

	if task.GetDuration() != 0 {
		t.Errorf("Expected zero duration before start, got %v", task.GetDuration())
	}
}
