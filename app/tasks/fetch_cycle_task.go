package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lkalneus/tubefeed/app/cfg"
	"github.com/lkalneus/tubefeed/app/feed"
)

// FetchCycleTask performs one full cycle: fetch every configured
// channel, write the JSON export and the RSS document, refresh the
// in-memory snapshot, and publish to Notion when configured. Sink
// failures are collected rather than short-circuiting so one broken
// output does not starve the others.
type FetchCycleTask struct {
	Task
	channels      []cfg.Channel
	fetcher       FetcherInterface
	exporter      ExporterInterface
	generator     GeneratorInterface
	publisher     PublisherInterface
	snapshot      *feed.Snapshot
	outputFile    string
	rssOutputFile string
}

func NewFetchCycleTask(c *cfg.Cfg, fetcher FetcherInterface, exporter ExporterInterface,
	generator GeneratorInterface, publisher PublisherInterface, snapshot *feed.Snapshot) *FetchCycleTask {
	return &FetchCycleTask{
		Task:          NewTask(TaskTypeFetchCycle),
		channels:      c.Channels,
		fetcher:       fetcher,
		exporter:      exporter,
		generator:     generator,
		publisher:     publisher,
		snapshot:      snapshot,
		outputFile:    c.OutputFile,
		rssOutputFile: c.RSSOutputFile,
	}
}

func (t *FetchCycleTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	feeds := t.fetcher.Run(ctx, t.channels)
	if len(feeds) == 0 {
		return fmt.Errorf("no channel feeds could be fetched")
	}

	var failures []error

	export, err := t.exporter.Save(feeds, t.outputFile)
	if err != nil {
		slog.Error("JSON export failed", "path", t.outputFile, "error", err)
		failures = append(failures, err)
	}

	rss, err := t.generator.Save(feeds, t.rssOutputFile)
	if err != nil {
		slog.Error("RSS generation failed", "path", t.rssOutputFile, "error", err)
		failures = append(failures, err)
	}

	// Documents are returned even when the file write failed, so the
	// snapshot can still serve them
	t.snapshot.Update(t.ID, feeds, export, rss)

	if t.publisher.IsConfigured() {
		if err := t.publisher.Publish(ctx, feeds); err != nil {
			slog.Error("Notion publish failed", "error", err)
			failures = append(failures, err)
		} else {
			slog.Info("Published feeds to Notion")
		}
	} else {
		slog.Debug("Notion integration not configured, skipping publish")
	}

	videoCount := 0
	for _, channelFeed := range feeds {
		videoCount += len(channelFeed.Videos)
	}

	slog.Info("Task completed",
		"type", "FetchCycle",
		"id", t.ID,
		"duration", t.GetDuration(),
		"channels", len(feeds),
		"videos", videoCount,
		"failures", len(failures))

	return errors.Join(failures...)
}
