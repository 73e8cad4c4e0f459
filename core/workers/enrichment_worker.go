// ABOUTME: Background worker pool that pre-warms enrichment caches
// ABOUTME: Runs metadata and accent color extraction off the request path

package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	"contentsage-api/core/interfaces"
)

// JobType selects which enrichment pass a job runs
type JobType int

const (
	JobTypeMetadata JobType = iota
	JobTypeColor
)

// EnrichmentJob is a batch of URLs to enrich in the background
type EnrichmentJob struct {
	Type     JobType
	URLs     []string
	Context  context.Context
	ResultCh chan<- interface{}
}

// WorkerConfig holds pool sizing for the enrichment worker
type WorkerConfig struct {
	MaxWorkers int
	QueueSize  int
}

// DefaultWorkerConfig returns the default pool sizing
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		MaxWorkers: 10,
		QueueSize:  100,
	}
}

var (
	ErrWorkerNotRunning = errors.New("worker pool is not running")
	ErrQueueFull        = errors.New("job queue is full")
)

// EnrichmentWorker processes enrichment jobs on a fixed goroutine pool
type EnrichmentWorker struct {
	enrichment interfaces.ContentEnrichmentService
	jobQueue   chan *EnrichmentJob
	maxWorkers int
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc

	// mu orders submits against shutdown: every submit holds the read
	// lock across its queue send, so Stop cannot close the queue while
	// a send is in flight.
	mu      sync.RWMutex
	running bool
}

// NewEnrichmentWorker creates a worker pool over the enrichment service
func NewEnrichmentWorker(enrichment interfaces.ContentEnrichmentService, config WorkerConfig) *EnrichmentWorker {
	defaults := DefaultWorkerConfig()
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = defaults.MaxWorkers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = defaults.QueueSize
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &EnrichmentWorker{
		enrichment: enrichment,
		jobQueue:   make(chan *EnrichmentJob, config.QueueSize),
		maxWorkers: config.MaxWorkers,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start launches the worker goroutines. Starting an already running pool
// is a no-op.
func (ew *EnrichmentWorker) Start() error {
	ew.mu.Lock()
	defer ew.mu.Unlock()

	if ew.running {
		return nil
	}

	for i := 0; i < ew.maxWorkers; i++ {
		ew.wg.Add(1)
		go ew.run()
	}

	ew.running = true
	return nil
}

// Stop waits for pending submits, closes the queue, drains the queued
// jobs, then cancels any in-flight context work
func (ew *EnrichmentWorker) Stop() error {
	ew.mu.Lock()
	defer ew.mu.Unlock()

	if !ew.running {
		return nil
	}

	close(ew.jobQueue)
	ew.wg.Wait()
	ew.cancel()

	ew.running = false
	return nil
}

// SubmitJob queues a job, failing if the queue stays full
func (ew *EnrichmentWorker) SubmitJob(job *EnrichmentJob) error {
	ew.mu.RLock()
	defer ew.mu.RUnlock()

	if !ew.running {
		return ErrWorkerNotRunning
	}

	select {
	case ew.jobQueue <- job:
		return nil
	case <-time.After(5 * time.Second):
		return ErrQueueFull
	}
}

// WarmMetadata queues a fire-and-forget metadata pre-warm for candidate URLs
func (ew *EnrichmentWorker) WarmMetadata(ctx context.Context, urls []string) {
	_ = ew.SubmitJob(&EnrichmentJob{
		Type:    JobTypeMetadata,
		URLs:    urls,
		Context: ctx,
	})
}

// WarmColors queues a fire-and-forget accent color pre-warm for thumbnails
func (ew *EnrichmentWorker) WarmColors(ctx context.Context, imageURLs []string) {
	_ = ew.SubmitJob(&EnrichmentJob{
		Type:    JobTypeColor,
		URLs:    imageURLs,
		Context: ctx,
	})
}

func (ew *EnrichmentWorker) run() {
	defer ew.wg.Done()

	for job := range ew.jobQueue {
		ew.processJob(job)
	}
}

func (ew *EnrichmentWorker) processJob(job *EnrichmentJob) {
	ctx := job.Context
	if ctx == nil {
		ctx = ew.ctx
	}

	var results interface{}
	switch job.Type {
	case JobTypeColor:
		results = ew.enrichment.ExtractColorBatch(ctx, job.URLs)
	case JobTypeMetadata:
		results = ew.enrichment.ExtractMetadataBatch(ctx, job.URLs)
	default:
		return
	}

	if job.ResultCh != nil {
		select {
		case job.ResultCh <- results:
		case <-ctx.Done():
		}
	}
}
