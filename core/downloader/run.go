package downloader

import (
	"context"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Rohitmeena8923/Test-playlist/common/utils/fsutil"
	"github.com/Rohitmeena8923/Test-playlist/core/progress"
)

// Outcome is the terminal state of a job as seen by the caller. Retry
// and backoff handling never cross this boundary.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomePartialFailure
	OutcomeFatal
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomePartialFailure:
		return "partial_failure"
	default:
		return "fatal"
	}
}

// Runner drives jobs to completion against an Engine.
type Runner struct {
	engine Engine
	root   string
	policy RetryPolicy

	// sleep is swapped out by tests for a fake clock.
	sleep func(ctx context.Context, d time.Duration) error
}

type RunnerOption func(*Runner)

// WithSleeper replaces the backoff sleep, used by tests to avoid real
// delays.
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) RunnerOption {
	return func(r *Runner) {
		r.sleep = sleep
	}
}

func NewRunner(engine Engine, root string, policy RetryPolicy, opts ...RunnerOption) *Runner {
	r := &Runner{
		engine: engine,
		root:   root,
		policy: policy,
		sleep:  sleepCtx,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run drives one job to its terminal outcome. On OutcomeFatal the
// returned error carries the classified reason; otherwise it is nil.
func (r *Runner) Run(ctx context.Context, job *Job, sink progress.Sink) (Outcome, error) {
	logger := log.FromContext(ctx).WithPrefix("downloader").With("job", job.ID)
	logger.Info("starting job", "url", job.URL, "quality", job.Quality)

	// Metadata failures signal a configuration or input problem, not
	// a flaky network: surface immediately, never retry.
	meta, err := r.engine.ResolveMetadata(ctx, job.URL)
	if err != nil {
		classified := Classify("resolve metadata", err)
		logger.Error("metadata resolution failed", "error", classified)
		return OutcomeFatal, classified
	}
	job.Title = meta.Title
	job.Items = meta.Items
	logger.Info("resolved playlist", "title", meta.Title, "items", len(meta.Items))

	dirName := fsutil.SanitizeFilename(meta.Title)
	if dirName == "" {
		dirName = "playlist"
	}
	job.Dir = filepath.Join(r.root, dirName)
	if err := fsutil.EnsureDir(job.Dir); err != nil {
		return OutcomeFatal, NewJobError(ErrorCodeWorkspace, "create destination", err)
	}

	report, err := r.downloadWithRetry(ctx, logger, job, sink)
	if err != nil {
		return OutcomeFatal, err
	}

	if report.Failed > 0 {
		logger.Warn("job finished with failures", "completed", report.Completed, "failed", report.Failed)
		return OutcomePartialFailure, nil
	}
	logger.Info("job finished", "completed", report.Completed)
	return OutcomeSuccess, nil
}

// downloadWithRetry retries the entire bulk operation on whitelisted
// transient failures, with increasing backoff between attempts.
func (r *Runner) downloadWithRetry(ctx context.Context, logger *log.Logger, job *Job, sink progress.Sink) (*Report, error) {
	req := Request{URL: job.URL, Format: job.Format, Dir: job.Dir}

	var lastErr error
	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			delay, ok := r.policy.NextDelay(attempt)
			if !ok {
				logger.Error("retries exhausted", "attempts", attempt, "error", lastErr)
				return nil, NewJobError(ErrorCodeRetryExhausted, "bulk download", lastErr)
			}
			logger.Warn("transient failure, retrying", "attempt", attempt, "delay", delay, "error", lastErr)
			if err := r.sleep(ctx, delay); err != nil {
				return nil, NewJobError(ErrorCodeDownloadFailed, "backoff wait", err)
			}
		}

		report, err := r.engine.Download(ctx, req, sink)
		if err == nil {
			return report, nil
		}

		classified := Classify("bulk download", err)
		if !IsTransient(classified) {
			logger.Error("permanent failure", "error", classified)
			return nil, classified
		}
		lastErr = classified
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
