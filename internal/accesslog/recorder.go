// Package accesslog buffers per-request records and flushes them to the
// store in the background, keeping database latency out of the connection
// loop.
package accesslog

import (
	"context"
	"log/slog"
	"time"

	"github.com/lowkeyarhan/Socket-P-assignment/internal/repository"
)

const (
	bufferSize    = 256
	batchSize     = 64
	flushInterval = time.Second
	flushTimeout  = 5 * time.Second
)

// Recorder accepts records without blocking. When the buffer is full the
// record is dropped and counted; losing an access-log row is preferable to
// stalling a worker. A nil *Recorder is valid and records nothing.
type Recorder struct {
	store   repository.AccessLogStore
	logger  *slog.Logger
	entries chan *repository.AccessLog
	done    chan struct{}
}

// NewRecorder starts the background flush loop. Returns nil when store is
// nil so call sites can stay unconditional.
func NewRecorder(store repository.AccessLogStore, logger *slog.Logger) *Recorder {
	if store == nil {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	r := &Recorder{
		store:   store,
		logger:  logger,
		entries: make(chan *repository.AccessLog, bufferSize),
		done:    make(chan struct{}),
	}
	go r.run()
	return r
}

// Record enqueues one entry; never blocks.
func (r *Recorder) Record(entry *repository.AccessLog) {
	if r == nil {
		return
	}
	select {
	case r.entries <- entry:
	default:
		r.logger.Warn("access log buffer full, dropping record")
	}
}

// Close flushes anything still buffered and stops the loop.
func (r *Recorder) Close() {
	if r == nil {
		return
	}
	close(r.entries)
	<-r.done
}

func (r *Recorder) run() {
	defer close(r.done)

	batch := make([]*repository.AccessLog, 0, batchSize)
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	for {
		select {
		case entry, ok := <-r.entries:
			if !ok {
				r.flush(batch)
				return
			}
			batch = append(batch, entry)
			if len(batch) >= batchSize {
				r.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				r.flush(batch)
				batch = batch[:0]
			}
		}
	}
}

func (r *Recorder) flush(batch []*repository.AccessLog) {
	if len(batch) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	if err := r.store.BatchInsert(ctx, batch); err != nil {
		r.logger.Error("flush access logs", "error", err, "records", len(batch))
	}
}
