package tasks

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lkalneus/tubefeed/app/cfg"
	"github.com/lkalneus/tubefeed/app/feed"
)

var _ SchedulerInterface = (*Scheduler)(nil)

// Scheduler drives fetch cycles: one immediately at startup, then one
// per day at the configured trigger time. Cycles run sequentially on a
// single goroutine and never overlap; the daily trigger, manual
// refresh requests, and shutdown are all observed between cycles only.
type Scheduler struct {
	cfg       *cfg.Cfg
	fetcher   FetcherInterface
	exporter  ExporterInterface
	generator GeneratorInterface
	publisher PublisherInterface
	snapshot  *feed.Snapshot
	hour      int
	minute    int
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	refreshCh chan struct{}
}

func NewScheduler(c *cfg.Cfg, fetcher FetcherInterface, exporter ExporterInterface,
	generator GeneratorInterface, publisher PublisherInterface, snapshot *feed.Snapshot) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	// Validated during configuration load
	hour, minute, _ := cfg.ParseScheduleTime(c.ScheduleTime)

	return &Scheduler{
		cfg:       c,
		fetcher:   fetcher,
		exporter:  exporter,
		generator: generator,
		publisher: publisher,
		snapshot:  snapshot,
		hour:      hour,
		minute:    minute,
		ctx:       ctx,
		cancel:    cancel,
		refreshCh: make(chan struct{}, 1),
	}
}

// RunOnce executes a single fetch cycle synchronously.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	return s.runCycle(ctx)
}

// Start launches the scheduling loop in the background.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}

// TriggerRefresh requests an immediate cycle. It reports false when a
// refresh is already pending.
func (s *Scheduler) TriggerRefresh() bool {
	select {
	case s.refreshCh <- struct{}{}:
		return true
	default:
		return false
	}
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	// Startup cycle; failures are logged and the loop continues
	s.runCycle(s.ctx)

	next := nextTrigger(time.Now(), s.hour, s.minute)
	slog.Info("Next scheduled fetch", "at", next.Format(time.RFC3339))

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-s.refreshCh:
			slog.Info("Manual refresh requested")
			s.runCycle(s.ctx)
		case now := <-ticker.C:
			if now.Before(next) {
				continue
			}
			s.runCycle(s.ctx)
			next = nextTrigger(time.Now(), s.hour, s.minute)
			slog.Info("Next scheduled fetch", "at", next.Format(time.RFC3339))
		}
	}
}

func (s *Scheduler) runCycle(ctx context.Context) error {
	task := NewFetchCycleTask(s.cfg, s.fetcher, s.exporter, s.generator, s.publisher, s.snapshot)
	task.Start()

	cycleCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()

	slog.Info("Fetch cycle started", "id", task.GetID())

	if err := task.Execute(cycleCtx); err != nil {
		slog.Error("Fetch cycle failed", "id", task.GetID(), "duration", task.GetDuration(), "error", err)
		return err
	}

	return nil
}

// nextTrigger returns the next occurrence of the daily trigger time
// strictly after now.
func nextTrigger(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}

	return next
}
