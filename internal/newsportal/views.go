package newsportal

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/daniilsolovey/news-cms/internal/metrics"
)

const viewIncrementTimeout = 5 * time.Second

// ViewStore persists view increments.
type ViewStore interface {
	IncrementArticleViews(ctx context.Context, articleID int) error
}

// ViewCounter increments article views in the background. Add never blocks
// the caller: when the queue is full the increment runs on its own goroutine.
type ViewCounter struct {
	store   ViewStore
	logger  *slog.Logger
	queue   chan int
	workers int

	mu      sync.RWMutex
	closed  bool
	pending sync.WaitGroup
}

func NewViewCounter(store ViewStore, logger *slog.Logger, queueSize, workers int) *ViewCounter {
	if queueSize < 1 {
		queueSize = 1
	}
	if workers < 1 {
		workers = 1
	}

	return &ViewCounter{
		store:   store,
		logger:  logger,
		queue:   make(chan int, queueSize),
		workers: workers,
	}
}

// Start launches the workers.
func (v *ViewCounter) Start() {
	for i := 0; i < v.workers; i++ {
		v.pending.Add(1)
		go func() {
			defer v.pending.Done()
			for articleID := range v.queue {
				metrics.ViewQueueLength.Dec()
				v.increment(articleID)
			}
		}()
	}
}

// Add schedules one view of articleID. Views added after Close are dropped.
func (v *ViewCounter) Add(articleID int) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.closed {
		metrics.ViewIncrementsTotal.WithLabelValues(metrics.ResultDropped).Inc()
		return
	}

	select {
	case v.queue <- articleID:
		metrics.ViewQueueLength.Inc()
	default:
		metrics.ViewIncrementsTotal.WithLabelValues(metrics.ResultOverflow).Inc()
		v.pending.Add(1)
		go func() {
			defer v.pending.Done()
			v.increment(articleID)
		}()
	}
}

func (v *ViewCounter) increment(articleID int) {
	ctx, cancel := context.WithTimeout(context.Background(), viewIncrementTimeout)
	defer cancel()

	if err := v.store.IncrementArticleViews(ctx, articleID); err != nil {
		metrics.ViewIncrementsTotal.WithLabelValues(metrics.ResultError).Inc()
		v.logger.Error("failed to increment article views", "articleId", articleID, "error", err)
		return
	}

	metrics.ViewIncrementsTotal.WithLabelValues(metrics.ResultOK).Inc()
}

// Close stops accepting views and waits until queued increments are written
// or ctx is done.
func (v *ViewCounter) Close(ctx context.Context) error {
	v.mu.Lock()
	if !v.closed {
		v.closed = true
		close(v.queue)
	}
	v.mu.Unlock()

	done := make(chan struct{})
	go func() {
		v.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
