package api

import (
	"github.com/lkalneus/tubefeed/app/feed"
	"github.com/lkalneus/tubefeed/app/tasks"
)

type Handler struct {
	snapshot  *feed.Snapshot
	scheduler tasks.SchedulerInterface
	version   string
}
