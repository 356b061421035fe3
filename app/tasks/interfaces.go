package tasks

import (
	"context"

	"github.com/lkalneus/tubefeed/app/cfg"
	"github.com/lkalneus/tubefeed/app/feed"
	"github.com/lkalneus/tubefeed/app/notion"
)

// SchedulerInterface defines the operations the rest of the application
// uses to drive fetch cycles: one-shot execution, the background daily
// loop, and manual refresh requests from the HTTP API.
type SchedulerInterface interface {
	Start()
	Stop()
	RunOnce(ctx context.Context) error
	TriggerRefresh() bool
}

// Collaborator interfaces for the fetch cycle, kept narrow so tests can
// substitute fakes.

type FetcherInterface interface {
	Run(ctx context.Context, channels []cfg.Channel) []feed.ChannelFeed
}

type ExporterInterface interface {
	Save(feeds []feed.ChannelFeed, path string) ([]byte, error)
}

type GeneratorInterface interface {
	Save(feeds []feed.ChannelFeed, path string) (string, error)
}

type PublisherInterface interface {
	IsConfigured() bool
	Publish(ctx context.Context, feeds []feed.ChannelFeed) error
}

var _ FetcherInterface = (*feed.Fetcher)(nil)
var _ ExporterInterface = (*feed.Exporter)(nil)
var _ GeneratorInterface = (*feed.Generator)(nil)
var _ PublisherInterface = (*notion.Publisher)(nil)
