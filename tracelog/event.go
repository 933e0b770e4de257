package tracelog

import (
	"fmt"
	"time"
)

// Phase labels the cognitive stage an event belongs to. The set is closed;
// readers group and color timelines by it.
type Phase string

const (
	// PhaseThinking covers run setup and perception.
	PhaseThinking Phase = "Thinking"
	// PhasePlanning covers tool selection decisions.
	PhasePlanning Phase = "Planning"
	// PhaseExecuting covers tool invocations.
	PhaseExecuting Phase = "Executing"
	// PhaseWaiting covers suspensions on external input.
	PhaseWaiting Phase = "Waiting"
	// PhaseCorrecting covers recovery after a failed step.
	PhaseCorrecting Phase = "Correcting"
	// PhaseCompleted covers terminal outcomes.
	PhaseCompleted Phase = "Completed"
)

// Status records the outcome of the lifecycle point an event marks.
type Status string

const (
	// StatusStarted marks the beginning of an operation.
	StatusStarted Status = "started"
	// StatusCompleted marks successful completion.
	StatusCompleted Status = "completed"
	// StatusFailed marks a failure.
	StatusFailed Status = "failed"
	// StatusRetrying marks a retry in progress.
	StatusRetrying Status = "retrying"
	// StatusWaiting marks a suspension.
	StatusWaiting Status = "waiting"
)

// Level is the severity of an event.
type Level string

const (
	// LevelInfo is the informational severity.
	LevelInfo Level = "info"
	// LevelWarn is the warning severity.
	LevelWarn Level = "warn"
	// LevelError is the error severity.
	LevelError Level = "error"
)

// Event is one persisted audit record. After emission it is immutable; the
// store appends, never updates. Events sharing a TraceID form the ordered
// timeline of one agent run, and the last event's Status/Phase reflect the
// run's terminal outcome.
type Event struct {
	TraceID   string         `json:"trace_id" bson:"trace_id"`
	FlowName  string         `json:"flow_name" bson:"flow_name"`
	UserID    string         `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Phase     Phase          `json:"phase" bson:"phase"`
	StepName  string         `json:"step_name" bson:"step_name"`
	Level     Level          `json:"level" bson:"level"`
	Status    Status         `json:"status" bson:"status"`
	Message   string         `json:"message" bson:"message"`
	Data      map[string]any `json:"data,omitempty" bson:"data,omitempty"`
	Source    string         `json:"source" bson:"source"`
	Timestamp time.Time      `json:"timestamp" bson:"timestamp"`
}

// Validate checks the structural invariants an event must satisfy before it
// can be appended.
func (e Event) Validate() error {
	if e.TraceID == "" {
		return fmt.Errorf("tracelog: event missing trace id")
	}
	if e.FlowName == "" {
		return fmt.Errorf("tracelog: event missing flow name")
	}
	if e.StepName == "" {
		return fmt.Errorf("tracelog: event missing step name")
	}
	switch e.Phase {
	case PhaseThinking, PhasePlanning, PhaseExecuting, PhaseWaiting, PhaseCorrecting, PhaseCompleted:
	default:
		return fmt.Errorf("tracelog: unknown phase %q", e.Phase)
	}
	switch e.Status {
	case StatusStarted, StatusCompleted, StatusFailed, StatusRetrying, StatusWaiting:
	default:
		return fmt.Errorf("tracelog: unknown status %q", e.Status)
	}
	switch e.Level {
	case LevelInfo, LevelWarn, LevelError:
	default:
		return fmt.Errorf("tracelog: unknown level %q", e.Level)
	}
	return nil
}
