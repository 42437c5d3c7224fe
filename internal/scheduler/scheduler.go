package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/noble-it/hub/internal/metrics"
	"github.com/robfig/cron/v3"
)

const (
	BackfillBatchSize = 20
	backfillTimeout   = 2 * time.Minute
)

// Backfiller attaches uptime monitors to clients that are missing one.
type Backfiller interface {
	Enabled() bool
	Backfill(ctx context.Context, limit int) (int, error)
}

type Scheduler struct {
	cron       *cron.Cron
	backfiller Backfiller
	metrics    *metrics.Metrics
	logger     *slog.Logger

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	running bool
}

// NewScheduler registers the backfill job on the given cron spec. An empty
// spec yields a scheduler with no jobs.
func NewScheduler(spec string, backfiller Backfiller, m *metrics.Metrics, logger *slog.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cronLogger := cronLog{logger: logger}
	ctx, cancel := context.WithCancel(context.Background())

	s := &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLogger),
			cron.SkipIfStillRunning(cronLogger),
		)),
		backfiller: backfiller,
		metrics:    m,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}

	if spec != "" {
		if _, err := s.cron.AddFunc(spec, s.runBackfill); err != nil {
			cancel()
			return nil, fmt.Errorf("invalid monitor backfill schedule %q: %w", spec, err)
		}
	}

	return s, nil
}

// Start begins running scheduled jobs in the background.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	s.cron.Start()
	s.running = true
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop cancels in-flight jobs and waits for them to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancel()

	if !s.running {
		return
	}

	<-s.cron.Stop().Done()
	s.running = false
	s.logger.Info("scheduler stopped")
}

// Status is reported by the health endpoint.
type Status struct {
	Running bool       `json:"running"`
	Jobs    int        `json:"jobs"`
	NextRun *time.Time `json:"nextRun,omitempty"`
}

func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	status := Status{Running: s.running, Jobs: len(entries)}

	for _, entry := range entries {
		if entry.Next.IsZero() {
			continue
		}
		if status.NextRun == nil || entry.Next.Before(*status.NextRun) {
			next := entry.Next
			status.NextRun = &next
		}
	}

	return status
}

func (s *Scheduler) runBackfill() {
	ctx, cancel := context.WithTimeout(s.ctx, backfillTimeout)
	defer cancel()

	if _, err := s.RunBackfill(ctx); err != nil {
		s.logger.Error("monitor backfill failed", "error", err)
	}
}

// RunBackfill performs one backfill batch immediately.
func (s *Scheduler) RunBackfill(ctx context.Context) (int, error) {
	if s.backfiller == nil || !s.backfiller.Enabled() {
		s.logger.Debug("uptime monitoring disabled, skipping monitor backfill")
		return 0, nil
	}

	s.metrics.BackfillRun()

	attached, err := s.backfiller.Backfill(ctx, BackfillBatchSize)
	if err != nil {
		return attached, err
	}

	if attached > 0 {
		s.logger.Info("monitor backfill attached monitors", "count", attached)
	}

	return attached, nil
}

// cronLog adapts slog to cron's logger interface.
type cronLog struct {
	logger *slog.Logger
}

func (l cronLog) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLog) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
