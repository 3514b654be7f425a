// Package jobx runs background jobs on a pluggable queue backend with
// retries, delayed scheduling and graceful shutdown.
package jobx

import (
	"context"
	"sync"
	"time"

	"github.com/Abraxas-365/resumeforge/pkg/kernel"
	"github.com/Abraxas-365/resumeforge/pkg/logx"
)

// HandlerFunc processes a job and returns its JSON result. A returned error
// retries the job unless it is wrapped with Permanent.
type HandlerFunc func(ctx context.Context, job *JobInfo) ([]byte, error)

type JobEnqueuer interface {
	Enqueue(ctx context.Context, job Job) (kernel.JobID, error)
	EnqueueDelayed(ctx context.Context, job Job, delay time.Duration) (kernel.JobID, error)
}

type JobStatusReader interface {
	GetJob(ctx context.Context, jobID kernel.JobID) (*JobInfo, error)
}

// JobProcessor provides backend operations for the worker loop.
type JobProcessor interface {
	Dequeue(ctx context.Context, queues []string, timeout time.Duration) (*JobInfo, error)
	Complete(ctx context.Context, jobID kernel.JobID, result []byte) error
	// Fail records errMsg. It reports whether the job should be retried,
	// which is never the case when retryable is false.
	Fail(ctx context.Context, jobID kernel.JobID, errMsg string, retryable bool) (retry bool, err error)
	Retry(ctx context.Context, jobID kernel.JobID, delay time.Duration) error
	PromoteScheduled(ctx context.Context, queues []string) error
}

// Queue combines all backend operations.
type Queue interface {
	JobEnqueuer
	JobStatusReader
	JobProcessor
}

// Client is the main entry point for enqueuing and processing jobs.
type Client struct {
	queue    Queue
	opts     WorkerOptions
	handlers map[string]HandlerFunc
	mu       sync.RWMutex
	running  bool
}

// NewClient creates a new job processing client.
func NewClient(queue Queue, options ...WorkerOption) *Client {
	opts := defaultWorkerOptions()
	for _, o := range options {
		o(&opts)
	}
	return &Client{
		queue:    queue,
		opts:     opts,
		handlers: make(map[string]HandlerFunc),
	}
}

// Register adds a handler for a given job type.
func (c *Client) Register(jobType string, handler HandlerFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[jobType] = handler
}

func withDefaults(job Job) (Job, error) {
	if job.Type == "" {
		return job, jobxErrors.New(ErrInvalidJob).WithDetail("reason", "job type is required")
	}
	if job.Queue == "" {
		job.Queue = DefaultQueue
	}
	if job.MaxRetries <= 0 {
		job.MaxRetries = DefaultMaxRetries
	}
	return job, nil
}

// Enqueue enqueues a job for immediate processing.
func (c *Client) Enqueue(ctx context.Context, job Job) (kernel.JobID, error) {
	job, err := withDefaults(job)
	if err != nil {
		return "", err
	}
	return c.queue.Enqueue(ctx, job)
}

// EnqueueDelayed enqueues a job that becomes available after delay.
func (c *Client) EnqueueDelayed(ctx context.Context, job Job, delay time.Duration) (kernel.JobID, error) {
	job, err := withDefaults(job)
	if err != nil {
		return "", err
	}
	return c.queue.EnqueueDelayed(ctx, job, delay)
}

func (c *Client) GetJob(ctx context.Context, jobID kernel.JobID) (*JobInfo, error) {
	return c.queue.GetJob(ctx, jobID)
}

// Start begins processing jobs. It blocks until ctx is cancelled.
func (c *Client) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return jobxErrors.New(ErrAlreadyRunning)
	}
	c.running = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
	}()

	logx.Infof("jobx: starting %d workers on queues %v", c.opts.Concurrency, c.opts.Queues)

	var wg sync.WaitGroup

	// Scheduler goroutine: promotes delayed jobs to the ready queue.
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.schedulerLoop(ctx)
	}()

	// Worker goroutines.
	for i := range c.opts.Concurrency {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			c.workerLoop(ctx, id)
		}(i)
	}

	// Wait for context cancellation, then drain.
	<-ctx.Done()
	logx.Info("jobx: shutting down workers...")

	// Give workers time to finish current jobs.
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logx.Info("jobx: all workers stopped")
		return nil
	case <-time.After(c.opts.ShutdownTimeout):
		logx.Warn("jobx: shutdown timed out, some jobs may not have completed")
		return jobxErrors.New(ErrShutdownTimeout).WithDetail("timeout", c.opts.ShutdownTimeout.String())
	}
}

func (c *Client) schedulerLoop(ctx context.Context) {
	ticker := time.NewTicker(c.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.queue.PromoteScheduled(ctx, c.opts.Queues); err != nil {
				if ctx.Err() != nil {
					return
				}
				logx.WithError(err).Warn("jobx: failed to promote scheduled jobs")
			}
		}
	}
}

func (c *Client) workerLoop(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		job, err := c.queue.Dequeue(ctx, c.opts.Queues, c.opts.DequeueTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logx.WithError(err).Warnf("jobx: worker %d dequeue error", id)
			time.Sleep(c.opts.PollInterval)
			continue
		}
		if job == nil {
			continue
		}

		c.processJob(ctx, job)
	}
}

// processJob runs one job. Bookkeeping uses a context that survives
// shutdown so an in-flight job is never left active.
func (c *Client) processJob(ctx context.Context, job *JobInfo) {
	log := logx.WithFields(logx.Fields{"job_id": job.ID.String(), "job_type": job.Type, "attempt": job.Attempts})
	store := context.WithoutCancel(ctx)

	c.mu.RLock()
	handler, ok := c.handlers[job.Type]
	c.mu.RUnlock()

	if !ok {
		log.Warn("jobx: no handler for job type")
		_, _ = c.queue.Fail(store, job.ID, jobxErrors.New(ErrNoHandler).Message, false)
		return
	}

	result, err := c.run(ctx, handler, job)
	if err != nil {
		log.WithError(err).Warn("jobx: job failed")

		shouldRetry, failErr := c.queue.Fail(store, job.ID, err.Error(), !IsPermanent(err))
		if failErr != nil {
			log.WithError(failErr).Error("jobx: failed to mark job as failed")
			return
		}

		if shouldRetry {
			if retryErr := c.queue.Retry(store, job.ID, c.opts.DefaultRetryDelay); retryErr != nil {
				log.WithError(retryErr).Error("jobx: failed to retry job")
			}
		}
		return
	}

	if err := c.queue.Complete(store, job.ID, result); err != nil {
		log.WithError(err).Error("jobx: failed to complete job")
		return
	}
	log.Debug("jobx: job completed")
}

func (c *Client) run(ctx context.Context, handler HandlerFunc, job *JobInfo) ([]byte, error) {
	if c.opts.JobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.JobTimeout)
		defer cancel()
	}
	return handler(ctx, job)
}
