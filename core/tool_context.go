package core

import (
	"context"
	"fmt"

	"github.com/brieflyai/cortex/logging"
)

// ToolContext is the constrained surface handed to tool implementations by
// the executor. It carries run identity (user, trace) and the correlation ref
// of the specific call, so tools can attribute their own side effects without
// the executor splicing extra fields into the argument payload.
type ToolContext struct {
	ctx     context.Context
	userID  string
	traceID string
	callRef string
	logger  logging.Logger
}

// NewToolContext constructs a tool context bound to one tool invocation.
// userID may be empty for anonymous runs; traceID and callRef must be set.
func NewToolContext(ctx context.Context, userID, traceID, callRef string, logger logging.Logger) *ToolContext {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &ToolContext{
		ctx:     ctx,
		userID:  userID,
		traceID: traceID,
		callRef: callRef,
		logger:  logger,
	}
}

// Context returns the cancellation context associated with the invocation.
func (tc *ToolContext) Context() context.Context { return tc.ctx }

// UserID returns the calling user's identifier, or "" for anonymous runs.
func (tc *ToolContext) UserID() string { return tc.userID }

// TraceID returns the trace identifier of the enclosing agent run.
func (tc *ToolContext) TraceID() string { return tc.traceID }

// CallRef returns the correlation token of this specific tool call.
func (tc *ToolContext) CallRef() string { return tc.callRef }

// Logger returns the diagnostic logger associated with the invocation.
func (tc *ToolContext) Logger() logging.Logger { return tc.logger }

// Validate performs a structural sanity check of the context.
func (tc *ToolContext) Validate() error {
	if tc.ctx == nil || tc.traceID == "" || tc.callRef == "" {
		return fmt.Errorf("invalid ToolContext")
	}
	return nil
}
