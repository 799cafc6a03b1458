package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rvleeuwen/laadscan/internal/domain/model"
)

// ErrQueueFull signals that no more import jobs can be accepted right now.
var ErrQueueFull = errors.New("import queue full")

// Importer is the subset of application functionality the pipeline needs.
type Importer interface {
	Import(ctx context.Context, data []byte, source string) (*model.ImportSummary, error)
}

// JobState describes the lifecycle of one import job.
type JobState string

const (
	JobStateQueued  JobState = "QUEUED"
	JobStateRunning JobState = "RUNNING"
	JobStateDone    JobState = "DONE"
	JobStateFailed  JobState = "FAILED"
)

// Job is one uploaded workbook waiting to be processed.
type Job struct {
	ID       string
	Filename string
	Data     []byte
}

// JobStatus is the queryable state of a submitted job.
type JobStatus struct {
	ID          string
	Filename    string
	State       JobState
	Inserted    int
	Warnings    []string
	Error       string
	SubmittedAt time.Time
	FinishedAt  time.Time
}

// ImportProcessor runs workbook imports on a bounded worker pool so large
// uploads do not block the request that carried them.
type ImportProcessor struct {
	importer Importer
	workers  int
	logger   *slog.Logger

	jobs     chan Job
	statuses map[string]*JobStatus
	seq      atomic.Int64
	wg       sync.WaitGroup
	cancel   context.CancelFunc
	mu       sync.Mutex
}

// NewImportProcessor constructs the import worker pool.
func NewImportProcessor(importer Importer, workers, queueSize int, logger *slog.Logger) *ImportProcessor {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	return &ImportProcessor{
		importer: importer,
		workers:  workers,
		logger:   logger,
		jobs:     make(chan Job, queueSize),
		statuses: make(map[string]*JobStatus),
	}
}

// Start launches background processing.
func (p *ImportProcessor) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}
}

// Stop waits for in-flight jobs to finish. Jobs still queued are dropped;
// their status stays QUEUED and the upload can be retried.
func (p *ImportProcessor) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

// Submit queues a workbook for processing and returns the job id.
func (p *ImportProcessor) Submit(filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty upload")
	}

	id := fmt.Sprintf("imp-%d", p.seq.Add(1))
	status := &JobStatus{ID: id, Filename: filename, State: JobStateQueued, SubmittedAt: time.Now()}

	p.mu.Lock()
	p.statuses[id] = status
	p.mu.Unlock()

	select {
	case p.jobs <- Job{ID: id, Filename: filename, Data: data}:
		return id, nil
	default:
		p.mu.Lock()
		delete(p.statuses, id)
		p.mu.Unlock()
		return "", ErrQueueFull
	}
}

// Status returns a copy of the job status.
func (p *ImportProcessor) Status(id string) (*JobStatus, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	status, ok := p.statuses[id]
	if !ok {
		return nil, false
	}
	copied := *status
	copied.Warnings = append([]string(nil), status.Warnings...)
	return &copied, true
}

func (p *ImportProcessor) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			p.run(ctx, job)
		}
	}
}

func (p *ImportProcessor) run(ctx context.Context, job Job) {
	p.setState(job.ID, func(s *JobStatus) {
		s.State = JobStateRunning
	})

	summary, err := p.importer.Import(ctx, job.Data, job.Filename)
	if err != nil {
		p.logger.Error("import failed",
			slog.String("job", job.ID),
			slog.String("file", job.Filename),
			slog.String("error", err.Error()))
		p.setState(job.ID, func(s *JobStatus) {
			s.State = JobStateFailed
			s.Error = err.Error()
			s.FinishedAt = time.Now()
		})
		return
	}

	p.logger.Info("import finished",
		slog.String("job", job.ID),
		slog.String("file", job.Filename),
		slog.Int("inserted", summary.Inserted),
		slog.Int("warnings", len(summary.Warnings)))
	p.setState(job.ID, func(s *JobStatus) {
		s.State = JobStateDone
		s.Inserted = summary.Inserted
		s.Warnings = summary.Warnings
		s.FinishedAt = time.Now()
	})
}

func (p *ImportProcessor) setState(id string, update func(*JobStatus)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if status, ok := p.statuses[id]; ok {
		update(status)
	}
}
