package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/zenith-trading/zenith-bot/pkg/logger"
)

// Worker interface that background workers should implement
type Worker interface {
	// Name returns worker name for logging
	Name() string
	// Run executes one iteration of work
	Run(ctx context.Context) error
}

// Option configures a PeriodicWorker
type Option func(*PeriodicWorker)

// WithInitialDelay delays the first iteration, staggering workers that
// start together.
func WithInitialDelay(d time.Duration) Option {
	return func(pw *PeriodicWorker) { pw.initialDelay = d }
}

// WithErrorBackoff replaces the normal interval with a fixed backoff
// after an iteration returns an error.
func WithErrorBackoff(d time.Duration) Option {
	return func(pw *PeriodicWorker) { pw.errorBackoff = d }
}

// PeriodicWorker wraps a Worker with periodic execution
type PeriodicWorker struct {
	worker       Worker
	interval     time.Duration
	initialDelay time.Duration
	errorBackoff time.Duration
	wg           *sync.WaitGroup
	name         string
}

// NewPeriodicWorker creates new periodic worker
func NewPeriodicWorker(worker Worker, interval time.Duration, opts ...Option) *PeriodicWorker {
	pw := &PeriodicWorker{
		worker:   worker,
		interval: interval,
		wg:       &sync.WaitGroup{},
		name:     worker.Name(),
	}
	for _, opt := range opts {
		opt(pw)
	}
	return pw
}

// Start starts the worker with graceful shutdown support
func (pw *PeriodicWorker) Start(ctx context.Context) {
	pw.wg.Add(1)
	go pw.run(ctx)
}

// Stop waits for graceful shutdown
func (pw *PeriodicWorker) Stop(timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		pw.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("worker stopped gracefully",
			zap.String("worker", pw.name),
		)
	case <-time.After(timeout):
		logger.Warn("worker stop timeout",
			zap.String("worker", pw.name),
		)
	}
}

// run executes worker iterations until the context is cancelled. The
// first iteration runs immediately after the optional initial delay;
// each subsequent iteration waits the interval, or the error backoff
// when the previous iteration failed.
func (pw *PeriodicWorker) run(ctx context.Context) {
	defer pw.wg.Done()

	logger.Info("worker started",
		zap.String("worker", pw.name),
		zap.Duration("interval", pw.interval),
	)

	if pw.initialDelay > 0 {
		if !sleepCtx(ctx, pw.initialDelay) {
			return
		}
	}

	for {
		wait := pw.interval

		if err := pw.worker.Run(ctx); err != nil {
			if ctx.Err() != nil {
				logger.Info("worker stopping", zap.String("worker", pw.name))
				return
			}
			logger.Error("worker execution failed",
				zap.String("worker", pw.name),
				zap.Error(err),
			)
			if pw.errorBackoff > 0 {
				wait = pw.errorBackoff
			}
		}

		if !sleepCtx(ctx, wait) {
			logger.Info("worker stopping", zap.String("worker", pw.name))
			return
		}
	}
}

// sleepCtx waits for d, returning false if the context is cancelled first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// Group manages multiple workers with graceful shutdown
type Group struct {
	workers []*PeriodicWorker
	ctx     context.Context
	cancel  context.CancelFunc
	mu      sync.Mutex
}

// NewGroup creates new worker group
func NewGroup(ctx context.Context) *Group {
	ctx, cancel := context.WithCancel(ctx)
	return &Group{
		workers: make([]*PeriodicWorker, 0),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Add adds worker to group
func (g *Group) Add(worker Worker, interval time.Duration, opts ...Option) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.workers = append(g.workers, NewPeriodicWorker(worker, interval, opts...))
}

// Start starts all workers
func (g *Group) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, w := range g.workers {
		w.Start(g.ctx)
	}

	logger.Info("worker group started", zap.Int("workers", len(g.workers)))
}

// Stop stops all workers gracefully
func (g *Group) Stop(timeout time.Duration) {
	logger.Info("stopping worker group...", zap.Int("workers", len(g.workers)))

	g.cancel()

	g.mu.Lock()
	defer g.mu.Unlock()

	for _, w := range g.workers {
		w.Stop(timeout)
	}

	logger.Info("worker group stopped")
}
