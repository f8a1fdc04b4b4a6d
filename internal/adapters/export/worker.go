package export

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"spacecore/internal/blob"
	"spacecore/pkg/domain"
)

// Status describes the lifecycle stage of an export job.
type Status string

// Export job statuses.
const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Artifact captures one stored rendering of a document.
type Artifact struct {
	ID          string    `json:"id"`
	Format      Format    `json:"format"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	Key         string    `json:"key"`
	URL         string    `json:"url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Job tracks an export request and its resulting artifacts.
type Job struct {
	ID          string     `json:"id"`
	Kind        Kind       `json:"kind"`
	Formats     []Format   `json:"formats"`
	Status      Status     `json:"status"`
	Error       string     `json:"error,omitempty"`
	Artifacts   []Artifact `json:"artifacts,omitempty"`
	RequestedBy string     `json:"requested_by"`
	Reason      string     `json:"reason,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Input represents an enqueue request for the worker.
type Input struct {
	Kind        Kind
	Formats     []Format
	RequestedBy string
	Reason      string
}

// AuditEntry captures audit trail metadata for exports.
type AuditEntry struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	Actor      string    `json:"actor"`
	Kind       Kind      `json:"kind"`
	Status     Status    `json:"status"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AuditLogger records export audit entries.
type AuditLogger interface {
	Record(ctx context.Context, entry AuditEntry)
}

// ZapAuditLogger writes audit entries to a structured logger.
type ZapAuditLogger struct {
	logger *zap.Logger
}

// NewZapAuditLogger wraps a zap logger as an AuditLogger.
func NewZapAuditLogger(logger *zap.Logger) *ZapAuditLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapAuditLogger{logger: logger}
}

// Record logs the entry at info level.
func (l *ZapAuditLogger) Record(_ context.Context, entry AuditEntry) {
	l.logger.Info("export audit",
		zap.String("id", entry.ID),
		zap.String("action", entry.Action),
		zap.String("actor", entry.Actor),
		zap.String("kind", string(entry.Kind)),
		zap.String("status", string(entry.Status)),
		zap.Time("occurred_at", entry.OccurredAt))
}

// MemoryAuditLog retains audit entries in memory, for tests and inspection.
type MemoryAuditLog struct {
	mu      sync.Mutex
	entries []AuditEntry
}

// Record appends the entry.
func (l *MemoryAuditLog) Record(_ context.Context, entry AuditEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
}

// Entries returns a copy of the recorded entries.
func (l *MemoryAuditLog) Entries() []AuditEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]AuditEntry(nil), l.entries...)
}

type task struct {
	id    string
	input Input
}

// Worker executes export jobs asynchronously: snapshot, render, store, audit.
type Worker struct {
	store  domain.PersistentStore
	blobs  blob.Store
	audit  AuditLogger
	logger *zap.Logger

	queue chan task
	mu    sync.RWMutex
	jobs  map[string]*Job

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// WorkerOption configures optional worker collaborators.
type WorkerOption func(*Worker)

// WithWorkerLogger attaches a structured logger to the worker.
func WithWorkerLogger(logger *zap.Logger) WorkerOption {
	return func(w *Worker) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWorker constructs an export worker over the given store and blob
// backend. A nil audit logger disables the audit trail.
func NewWorker(store domain.PersistentStore, blobs blob.Store, audit AuditLogger, opts ...WorkerOption) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Worker{
		store:  store,
		blobs:  blobs,
		audit:  audit,
		logger: zap.NewNop(),
		queue:  make(chan task, 32),
		jobs:   make(map[string]*Job),
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins processing export requests.
func (w *Worker) Start() {
	w.wg.Add(1)
	go w.loop()
}

// Stop signals the worker to halt and waits for in-flight jobs.
func (w *Worker) Stop(ctx context.Context) error {
	w.cancel()
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Enqueue validates and queues an export request, returning the queued job.
func (w *Worker) Enqueue(ctx context.Context, input Input) (Job, error) {
	switch input.Kind {
	case KindDump, KindTemplate:
	default:
		return Job{}, fmt.Errorf("unknown export kind %q", input.Kind)
	}
	if len(input.Formats) == 0 {
		input.Formats = []Format{FormatJSON}
	}
	for _, format := range input.Formats {
		if format != FormatJSON && format != FormatCSV {
			return Job{}, fmt.Errorf("unsupported export format %q", format)
		}
	}

	now := time.Now().UTC()
	job := &Job{
		ID:          uuid.NewString(),
		Kind:        input.Kind,
		Formats:     append([]Format(nil), input.Formats...),
		Status:      StatusQueued,
		RequestedBy: input.RequestedBy,
		Reason:      input.Reason,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	w.mu.Lock()
	w.jobs[job.ID] = job
	w.mu.Unlock()

	w.recordAudit(ctx, *job, "export_requested")

	select {
	case w.queue <- task{id: job.ID, input: input}:
	case <-ctx.Done():
		w.setFailure(job.ID, ctx.Err().Error())
		return Job{}, ctx.Err()
	case <-w.ctx.Done():
		w.setFailure(job.ID, "worker stopped")
		return Job{}, fmt.Errorf("export worker stopped")
	}
	return w.snapshotJob(job.ID), nil
}

// Get returns the job by id.
func (w *Worker) Get(id string) (Job, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	job, ok := w.jobs[id]
	if !ok {
		return Job{}, false
	}
	return copyJob(job), true
}

func (w *Worker) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case t := <-w.queue:
			w.process(t)
		}
	}
}

func (w *Worker) process(t task) {
	w.setStatus(t.id, StatusRunning)

	var doc Document
	var err error
	switch t.input.Kind {
	case KindTemplate:
		doc = BuildTemplate()
	default:
		err = w.store.View(w.ctx, func(view domain.TransactionView) error {
			doc = BuildDump(view)
			return nil
		})
	}
	if err != nil {
		w.fail(t, err)
		return
	}

	var artifacts []Artifact
	for _, format := range t.input.Formats {
		payload, err := Render(doc, format)
		if err != nil {
			w.fail(t, err)
			return
		}
		key := fmt.Sprintf("exports/%s/%s.%s", t.id, t.input.Kind, format)
		info, err := w.blobs.Put(w.ctx, key, bytes.NewReader(payload), blob.PutOptions{
			ContentType: format.ContentType(),
			Metadata:    map[string]string{"kind": string(t.input.Kind), "job": t.id},
		})
		if err != nil {
			w.fail(t, err)
			return
		}
		artifacts = append(artifacts, Artifact{
			ID:          uuid.NewString(),
			Format:      format,
			ContentType: format.ContentType(),
			SizeBytes:   info.Size,
			Key:         info.Key,
			URL:         info.URL,
			CreatedAt:   time.Now().UTC(),
		})
	}

	now := time.Now().UTC()
	w.mu.Lock()
	if job, ok := w.jobs[t.id]; ok {
		job.Status = StatusSucceeded
		job.Artifacts = artifacts
		job.UpdatedAt = now
		job.CompletedAt = &now
	}
	w.mu.Unlock()
	w.recordAudit(w.ctx, w.snapshotJob(t.id), "export_completed")
}

func (w *Worker) fail(t task, err error) {
	w.logger.Error("export failed",
		zap.String("job", t.id),
		zap.String("kind", string(t.input.Kind)),
		zap.Error(err))
	w.setFailure(t.id, err.Error())
	w.recordAudit(w.ctx, w.snapshotJob(t.id), "export_failed")
}

func (w *Worker) setStatus(id string, status Status) {
	w.mu.Lock()
	if job, ok := w.jobs[id]; ok {
		job.Status = status
		job.UpdatedAt = time.Now().UTC()
	}
	w.mu.Unlock()
}

func (w *Worker) setFailure(id, message string) {
	now := time.Now().UTC()
	w.mu.Lock()
	if job, ok := w.jobs[id]; ok {
		job.Status = StatusFailed
		job.Error = message
		job.UpdatedAt = now
		job.CompletedAt = &now
	}
	w.mu.Unlock()
}

func (w *Worker) snapshotJob(id string) Job {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if job, ok := w.jobs[id]; ok {
		return copyJob(job)
	}
	return Job{}
}

func (w *Worker) recordAudit(ctx context.Context, job Job, action string) {
	if w.audit == nil {
		return
	}
	w.audit.Record(ctx, AuditEntry{
		ID:         uuid.NewString(),
		Action:     action,
		Actor:      job.RequestedBy,
		Kind:       job.Kind,
		Status:     job.Status,
		Reason:     job.Reason,
		OccurredAt: time.Now().UTC(),
	})
}

func copyJob(job *Job) Job {
	out := *job
	out.Formats = append([]Format(nil), job.Formats...)
	out.Artifacts = append([]Artifact(nil), job.Artifacts...)
	if job.CompletedAt != nil {
		t := *job.CompletedAt
		out.CompletedAt = &t
	}
	return out
}
