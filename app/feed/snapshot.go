package feed

import (
	"sync"
	"time"
)

// Snapshot holds the documents produced by the most recent completed
// fetch cycle so the HTTP endpoints can serve them without touching the
// output files. Written once per cycle, read on every request.
type Snapshot struct {
	mu           sync.RWMutex
	cycleID      string
	completedAt  time.Time
	channelCount int
	videoCount   int
	rss          string
	export       []byte
}

func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

// Update records the outcome of a cycle. Empty documents are ignored so
// a partially failed cycle cannot clobber the last good ones.
func (s *Snapshot) Update(cycleID string, feeds []ChannelFeed, export []byte, rss string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cycleID = cycleID
	s.completedAt = time.Now().UTC()
	s.channelCount = len(feeds)
	s.videoCount = 0
	for _, channelFeed := range feeds {
		s.videoCount += len(channelFeed.Videos)
	}

	if len(export) > 0 {
		s.export = append([]byte(nil), export...)
	}
	if rss != "" {
		s.rss = rss
	}
}

func (s *Snapshot) RSS() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.rss, s.rss != ""
}

func (s *Snapshot) Export() ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.export, len(s.export) > 0
}

type SnapshotStats struct {
	CycleID      string
	CompletedAt  time.Time
	ChannelCount int
	VideoCount   int
}

// Stats reports the last cycle's counters; the boolean is false until
// the first cycle completes.
func (s *Snapshot) Stats() (SnapshotStats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cycleID == "" {
		return SnapshotStats{}, false
	}

	return SnapshotStats{
		CycleID:      s.cycleID,
		CompletedAt:  s.completedAt,
		ChannelCount: s.channelCount,
		VideoCount:   s.videoCount,
	}, true
}
