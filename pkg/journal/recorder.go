package journal

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bklybor/decision-table/pkg/dtable"
)

// RecorderConfig contains configuration for the journal recorder.
type RecorderConfig struct {
	// Enabled enables journal recording.
	Enabled bool

	// AsyncBuffer is the size of the async write channel buffer.
	// Default: 1000.
	AsyncBuffer int

	// WriteTimeout is the timeout for writing a record to storage.
	// Default: 5 seconds.
	WriteTimeout time.Duration
}

// DefaultRecorderConfig returns the default recorder configuration.
func DefaultRecorderConfig() *RecorderConfig {
	return &RecorderConfig{
		Enabled:      true,
		AsyncBuffer:  1000,
		WriteTimeout: 5 * time.Second,
	}
}

// Recorder journals decision evaluations asynchronously so the evaluation
// path never blocks on storage writes. Records that cannot be buffered
// are dropped and counted.
type Recorder struct {
	storage    Storage
	config     *RecorderConfig
	recordChan chan *Record
	wg         sync.WaitGroup
	done       chan struct{}
	closeOnce  sync.Once
	logger     *slog.Logger

	mu      sync.Mutex
	dropped int64
}

// NewRecorder creates a journal recorder and starts its background writer.
func NewRecorder(storage Storage, config *RecorderConfig, logger *slog.Logger) *Recorder {
	if config == nil {
		config = DefaultRecorderConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	r := &Recorder{
		storage:    storage,
		config:     config,
		recordChan: make(chan *Record, config.AsyncBuffer),
		done:       make(chan struct{}),
		logger:     logger.With("component", "journal.recorder"),
	}

	r.wg.Add(1)
	go r.worker()

	return r
}

// RecordDecision journals a first-match evaluation.
func (r *Recorder) RecordDecision(table string, input map[string]any, decision dtable.Decision, evalErr error, duration time.Duration) {
	if !r.config.Enabled {
		return
	}

	record := r.newRecord(table, string(dtable.FirstMatch), input, duration)
	if evalErr != nil {
		record.Error = evalErr.Error()
		record.MatchedRow = -1
		if _, ok := evalErr.(*dtable.NoMatchError); ok {
			record.NoMatch = true
		}
	} else {
		record.Matched = 1
		record.MatchedRow = decision.Row
		record.Actions = marshalJSON(decision.Actions)
	}

	r.enqueue(record)
}

// RecordDecisions journals an all-matches evaluation.
func (r *Recorder) RecordDecisions(table string, input map[string]any, decisions []dtable.Decision, evalErr error, duration time.Duration) {
	if !r.config.Enabled {
		return
	}

	record := r.newRecord(table, string(dtable.AllMatches), input, duration)
	record.MatchedRow = -1
	if evalErr != nil {
		record.Error = evalErr.Error()
	} else {
		record.Matched = len(decisions)
		if len(decisions) > 0 {
			record.MatchedRow = decisions[0].Row
			actions := make([]map[string]any, len(decisions))
			for i, d := range decisions {
				actions[i] = d.Actions
			}
			record.Actions = marshalJSON(actions)
		}
	}

	r.enqueue(record)
}

// newRecord builds the common part of a journal record.
func (r *Recorder) newRecord(table, mode string, input map[string]any, duration time.Duration) *Record {
	return &Record{
		ID:          uuid.New().String(),
		Table:       table,
		Mode:        mode,
		Input:       marshalJSON(input),
		MatchedRow:  -1,
		EvaluatedAt: time.Now().UTC(),
		Duration:    duration,
	}
}

// enqueue buffers a record for the background writer, dropping it if the
// buffer is full.
func (r *Recorder) enqueue(record *Record) {
	select {
	case r.recordChan <- record:
	default:
		r.mu.Lock()
		r.dropped++
		dropped := r.dropped
		r.mu.Unlock()
		r.logger.Warn("journal buffer full, record dropped",
			"record_id", record.ID,
			"dropped_total", dropped,
		)
	}
}

// Dropped returns the number of records dropped due to a full buffer.
func (r *Recorder) Dropped() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// worker drains the record channel into storage.
func (r *Recorder) worker() {
	defer r.wg.Done()

	for {
		select {
		case record := <-r.recordChan:
			r.write(record)
		case <-r.done:
			// Drain remaining records before exiting.
			for {
				select {
				case record := <-r.recordChan:
					r.write(record)
				default:
					return
				}
			}
		}
	}
}

// write persists one record with the configured timeout.
func (r *Recorder) write(record *Record) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.WriteTimeout)
	defer cancel()

	if err := r.storage.Write(ctx, record); err != nil {
		r.logger.Error("failed to write journal record",
			"record_id", record.ID,
			"error", err,
		)
	}
}

// Close stops the background writer, draining buffered records first.
func (r *Recorder) Close() error {
	r.closeOnce.Do(func() {
		close(r.done)
		r.wg.Wait()
	})
	return nil
}

// marshalJSON serializes a value for storage, falling back to an empty
// object on failure.
func marshalJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}
