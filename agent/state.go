package agent

// runState tracks the executor's position in its run lifecycle. Keeping the
// machine explicit (rather than an open-ended "loop until the model stops
// asking for tools") makes the iteration bound auditable and testable.
type runState int

const (
	// statePerceiving fetches long-term memory and assembles instructions.
	statePerceiving runState = iota
	// stateReasoning asks the model for the next action.
	stateReasoning
	// stateDispatching resolves and invokes the requested tool.
	stateDispatching
	// stateReflecting appends the tool observation to the transcript.
	stateReflecting
	// stateDone holds a final answer.
	stateDone
	// stateFailed terminates the run with an error.
	stateFailed
)

// String returns the state name for diagnostics.
func (s runState) String() string {
	switch s {
	case statePerceiving:
		return "perceiving"
	case stateReasoning:
		return "reasoning"
	case stateDispatching:
		return "dispatching"
	case stateReflecting:
		return "reflecting"
	case stateDone:
		return "done"
	case stateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
