package download

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	httpx "github.com/wtzmx/QFNU-GradPhoto-Downloader/internal/http"
	"github.com/wtzmx/QFNU-GradPhoto-Downloader/internal/model"
	"golang.org/x/sync/errgroup"
)

// PoolConfig holds the knobs for one batch run.
type PoolConfig struct {
	// Concurrency is the maximum number of simultaneous downloads.
	Concurrency int

	// MaxRetries is the number of extra attempts after a failed one.
	MaxRetries int

	// RetryCooldown is the base wait between attempts, in seconds.
	// The wait grows as RetryCooldown * RetryExponent^attempt.
	RetryCooldown float64
	RetryExponent float64

	// SkipExisting skips tasks whose destination file already exists
	// with a size close enough to the expected one.
	SkipExisting bool

	// AllowedSizeDiff is the tolerated relative size difference for
	// the skip-existing check (0.05 = 5%).
	AllowedSizeDiff float64
}

// Pool downloads a batch of tasks with bounded concurrency.
//
// Tasks never abort the batch: each one ends in StatusDone or
// StatusFailed and the pool reports the aggregate in a BatchResult.
// Cancelling the context stops in-flight downloads and marks tasks
// that have not started as failed with ReasonCancelled.
type Pool struct {
	cfg    PoolConfig
	client *httpx.Client

	onProgress func(ProgressEvent)
	onFinished func(*model.DownloadTask)
	onBytes    func(delta int64)

	mu sync.Mutex
}

// NewPool creates a download pool on top of the shared HTTP client.
//
// onProgress receives human-readable events; onFinished is called once
// per task when it reaches a terminal status; onBytes receives byte
// deltas as data arrives. All three may be nil.
func NewPool(cfg PoolConfig, client *httpx.Client, onProgress func(ProgressEvent), onFinished func(*model.DownloadTask), onBytes func(delta int64)) *Pool {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.RetryExponent <= 0 {
		cfg.RetryExponent = 1
	}
	return &Pool{
		cfg:        cfg,
		client:     client,
		onProgress: onProgress,
		onFinished: onFinished,
		onBytes:    onBytes,
	}
}

// Run downloads all tasks and returns the aggregated outcome.
//
// Run blocks until every task is terminal. The returned result counts
// each task exactly once as succeeded, skipped or failed.
func (p *Pool) Run(ctx context.Context, tasks []*model.DownloadTask) *model.BatchResult {
	start := time.Now()
	result := &model.BatchResult{}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Concurrency)

	for _, task := range tasks {
		task := task
		g.Go(func() error {
			p.runTask(ctx, task, result)
			return nil
		})
	}

	g.Wait()

	result.Elapsed = time.Since(start)
	return result
}

func (p *Pool) runTask(ctx context.Context, task *model.DownloadTask, result *model.BatchResult) {
	defer p.finished(task)

	name := filepath.Base(task.DestPath)

	// Tasks still queued when the batch is cancelled never start.
	if ctx.Err() != nil {
		p.fail(task, result, model.ReasonCancelled, ctx.Err())
		return
	}

	if p.cfg.SkipExisting {
		if size, ok := p.existingFileMatches(task); ok {
			task.Status = model.StatusDone
			p.record(result, func(r *model.BatchResult) {
				r.Skipped++
				r.BytesReceived += size
			})
			p.progress(ProgressEvent{Message: fmt.Sprintf("Skipping existing: %s", name), Level: LevelVerbose})
			return
		}
	}

	task.Status = model.StatusInProgress

	var err error
	for attempt := 0; ; attempt++ {
		err = p.client.DownloadFile(ctx, task.SourceURL, task.DestPath, p.byteTracker())
		if err == nil {
			break
		}

		reason := classify(err)
		if reason == model.ReasonCancelled || reason == model.ReasonFilesystem {
			p.fail(task, result, reason, err)
			return
		}
		if attempt >= p.cfg.MaxRetries {
			p.fail(task, result, reason, err)
			return
		}

		p.progress(ProgressEvent{
			Message: fmt.Sprintf("Retry %d/%d for %s: %v", attempt+1, p.cfg.MaxRetries, name, err),
			Level:   LevelWarning,
		})
		if !p.waitForRetry(ctx, attempt) {
			p.fail(task, result, model.ReasonCancelled, ctx.Err())
			return
		}
	}

	task.Status = model.StatusDone

	var written int64
	if info, statErr := os.Stat(task.DestPath); statErr == nil {
		written = info.Size()
	}
	p.record(result, func(r *model.BatchResult) {
		r.Succeeded++
		r.BytesReceived += written
	})
	p.progress(ProgressEvent{Message: fmt.Sprintf("Downloaded: %s", name), Level: LevelVerbose})
}

// existingFileMatches reports whether the destination file exists with
// a size within the allowed difference of the expected size.
func (p *Pool) existingFileMatches(task *model.DownloadTask) (int64, bool) {
	if task.ExpectedSize <= 0 {
		return 0, false
	}
	info, err := os.Stat(task.DestPath)
	if err != nil {
		return 0, false
	}

	diff := float64(info.Size()-task.ExpectedSize) / float64(task.ExpectedSize)
	if math.Abs(diff) > p.cfg.AllowedSizeDiff {
		return 0, false
	}
	return info.Size(), true
}

func (p *Pool) fail(task *model.DownloadTask, result *model.BatchResult, reason model.FailReason, err error) {
	task.Status = model.StatusFailed
	task.Reason = reason
	task.Err = err

	name := filepath.Base(task.DestPath)
	p.record(result, func(r *model.BatchResult) {
		r.Failed++
		r.Failures = append(r.Failures, model.TaskFailure{Name: name, Reason: reason, Err: err})
	})
	p.progress(ProgressEvent{Message: fmt.Sprintf("Failed %s (%s): %v", name, reason, err), Level: LevelError})
}

// classify maps a download error onto a failure reason.
func classify(err error) model.FailReason {
	switch {
	case errors.Is(err, context.Canceled):
		return model.ReasonCancelled
	case errors.Is(err, context.DeadlineExceeded):
		return model.ReasonTimeout
	default:
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return model.ReasonFilesystem
		}
		return model.ReasonNetwork
	}
}

// waitForRetry sleeps the exponential cooldown, returning false when
// the context is cancelled first.
func (p *Pool) waitForRetry(ctx context.Context, attempt int) bool {
	cooldown := p.cfg.RetryCooldown * math.Pow(p.cfg.RetryExponent, float64(attempt))
	select {
	case <-ctx.Done():
		return false
	case <-time.After(time.Duration(cooldown * float64(time.Second))):
		return true
	}
}

// byteTracker adapts the cumulative progress callback into deltas.
func (p *Pool) byteTracker() func(written, total int64) {
	if p.onBytes == nil {
		return nil
	}
	var last int64
	return func(written, total int64) {
		p.onBytes(written - last)
		last = written
	}
}

func (p *Pool) record(result *model.BatchResult, update func(*model.BatchResult)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	update(result)
}

func (p *Pool) progress(event ProgressEvent) {
	if p.onProgress != nil {
		p.onProgress(event)
	}
}

func (p *Pool) finished(task *model.DownloadTask) {
	if p.onFinished != nil {
		p.onFinished(task)
	}
}
