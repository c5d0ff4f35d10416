package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jsamuelsen/bookmark-service/internal/platform/config"
	"github.com/jsamuelsen/bookmark-service/internal/platform/telemetry"
)

var (
	// ErrQueueFull is returned by Submit when every queue slot is taken.
	ErrQueueFull = errors.New("enrichment queue is full")

	// ErrWorkerStopped is returned by Submit after Stop.
	ErrWorkerStopped = errors.New("enrichment worker is stopped")
)

// DefaultJobTimeout bounds a single enrichment job.
const DefaultJobTimeout = 2 * time.Minute

// EnrichmentJob identifies a bookmark waiting for analysis.
type EnrichmentJob struct {
	UserID     string
	BookmarkID string
}

// EnrichFunc processes one job.
type EnrichFunc func(ctx context.Context, job EnrichmentJob) error

// EnrichmentWorker runs a fixed number of goroutines draining a bounded
// job queue.
type EnrichmentWorker struct {
	jobs       chan EnrichmentJob
	handle     EnrichFunc
	workers    int
	jobTimeout time.Duration
	metrics    *telemetry.AnalysisMetrics
	logger     *slog.Logger

	mu      sync.RWMutex
	stopped bool
	started bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// EnrichmentWorkerConfig configures the pool.
type EnrichmentWorkerConfig struct {
	Handler    EnrichFunc
	Workers    int
	QueueSize  int
	JobTimeout time.Duration
	Metrics    *telemetry.AnalysisMetrics
	Logger     *slog.Logger
}

// NewEnrichmentWorker creates a pool. It panics without a handler.
func NewEnrichmentWorker(cfg EnrichmentWorkerConfig) *EnrichmentWorker {
	if cfg.Handler == nil {
		panic("app: enrichment worker requires a handler")
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = config.DefaultAnalysisWorkers
	}

	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = config.DefaultAnalysisQueueSize
	}

	jobTimeout := cfg.JobTimeout
	if jobTimeout <= 0 {
		jobTimeout = DefaultJobTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &EnrichmentWorker{
		jobs:       make(chan EnrichmentJob, queueSize),
		handle:     cfg.Handler,
		workers:    workers,
		jobTimeout: jobTimeout,
		metrics:    cfg.Metrics,
		logger:     logger.With(slog.String("component", "app.EnrichmentWorker")),
	}
}

// Start launches the workers. Jobs run under a context derived from ctx
// with cancellation detached, so they outlive the caller's request.
func (w *EnrichmentWorker) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started || w.stopped {
		return
	}

	w.started = true

	base, cancel := context.WithCancel(context.WithoutCancel(ctx))
	w.cancel = cancel

	for i := range w.workers {
		w.wg.Add(1)

		go w.run(base, i)
	}

	w.logger.Info("enrichment workers started",
		slog.Int("workers", w.workers),
		slog.Int("queue_size", cap(w.jobs)),
	)
}

// Submit queues job without blocking.
func (w *EnrichmentWorker) Submit(job EnrichmentJob) error {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.stopped {
		return ErrWorkerStopped
	}

	select {
	case w.jobs <- job:
		w.metrics.QueueDepth(len(w.jobs))
		return nil
	default:
		return ErrQueueFull
	}
}

// Pending returns the number of queued jobs.
func (w *EnrichmentWorker) Pending() int {
	return len(w.jobs)
}

// Stop refuses new jobs and waits for queued ones to finish. When ctx ends
// first the running jobs are canceled and ctx's error is returned.
func (w *EnrichmentWorker) Stop(ctx context.Context) error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}

	w.stopped = true
	close(w.jobs)
	cancel := w.cancel
	w.mu.Unlock()

	if cancel == nil {
		return nil
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		cancel()
		w.logger.Info("enrichment workers drained")

		return nil
	case <-ctx.Done():
		cancel()
		<-done

		return fmt.Errorf("draining enrichment queue: %w", ctx.Err())
	}
}

func (w *EnrichmentWorker) run(ctx context.Context, id int) {
	defer w.wg.Done()

	logger := w.logger.With(slog.Int("worker", id))

	for job := range w.jobs {
		w.metrics.QueueDepth(len(w.jobs))
		w.process(ctx, logger, job)
	}
}

func (w *EnrichmentWorker) process(ctx context.Context, logger *slog.Logger, job EnrichmentJob) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("enrichment job panicked",
				slog.String("bookmark_id", job.BookmarkID),
				slog.Any("panic", r),
			)
		}
	}()

	if ctx.Err() != nil {
		logger.Warn("skipping enrichment job after cancellation", slog.String("bookmark_id", job.BookmarkID))
		return
	}

	jobCtx, cancel := context.WithTimeout(ctx, w.jobTimeout)
	defer cancel()

	start := time.Now()

	if err := w.handle(jobCtx, job); err != nil {
		logger.Error("enrichment job failed",
			slog.String("bookmark_id", job.BookmarkID),
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err),
		)

		return
	}

	logger.Debug("enrichment job done",
		slog.String("bookmark_id", job.BookmarkID),
		slog.Duration("duration", time.Since(start)),
	)
}
