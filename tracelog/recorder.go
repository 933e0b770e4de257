package tracelog

import (
	"context"
	"time"

	"github.com/brieflyai/cortex/logging"
)

// Store persists audit events. Append must be durable and append-only;
// ListByTrace returns all events of one run sorted by timestamp ascending.
type Store interface {
	Append(ctx context.Context, ev Event) error
	ListByTrace(ctx context.Context, traceID string) ([]Event, error)
}

// Recorder is the write side handed to the executor. It stamps timestamps,
// validates events and treats store failures as non-fatal: audit writes must
// never gate the run that produced them.
type Recorder struct {
	store  Store
	logger logging.Logger
}

// NewRecorder creates a Recorder over the given store. A nil logger is
// replaced with a NoOpLogger.
func NewRecorder(store Store, logger logging.Logger) *Recorder {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Recorder{store: store, logger: logger}
}

// Record appends ev to the store. The zero Timestamp is filled with the
// current UTC time. Validation and store errors are logged and swallowed;
// the caller's control flow is never affected.
func (r *Recorder) Record(ctx context.Context, ev Event) {
	if r == nil || r.store == nil {
		return
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	if err := ev.Validate(); err != nil {
		r.logger.Warn("tracelog.record.invalid", "step", ev.StepName, "error", err.Error())
		return
	}
	if err := r.store.Append(ctx, ev); err != nil {
		r.logger.Warn("tracelog.record.failed", "trace_id", ev.TraceID, "step", ev.StepName, "error", err.Error())
	}
}
