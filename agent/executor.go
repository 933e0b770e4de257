package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/brieflyai/cortex/core"
	"github.com/brieflyai/cortex/logging"
	"github.com/brieflyai/cortex/model"
	"github.com/brieflyai/cortex/tool"
	"github.com/brieflyai/cortex/tracelog"
)

// DefaultMaxLoops bounds the number of reasoning passes per run.
const DefaultMaxLoops = 10

// DefaultFlowName identifies this orchestrator in audit events.
const DefaultFlowName = "cognitiveCore"

// eventSource identifies the emitting module in audit events.
const eventSource = "agent/executor"

// Fatal run errors. All three terminate the call; none are retried here.
var (
	// ErrNoUserMessage is returned when the input transcript is empty or
	// does not end with a non-empty user message.
	ErrNoUserMessage = errors.New("conversation must end with a non-empty user message")

	// ErrNoModelResponse is returned when the gateway produced zero candidates.
	ErrNoModelResponse = errors.New("AI generation failed to produce a response")

	// ErrUnknownTool is returned when the model requested a tool absent
	// from the registry.
	ErrUnknownTool = errors.New("requested tool is not available")

	// ErrNoFinalResponse is returned when the loop ended without any final
	// text to hand back.
	ErrNoFinalResponse = errors.New("the agent did not produce a final response, check the trace log")
)

// Options configures an Executor.
type Options struct {
	// MaxLoops caps the number of reasoning passes per run.
	MaxLoops int
	// FlowName tags every audit event emitted by this executor.
	FlowName string
	// Logger receives diagnostics; defaults to NoOpLogger.
	Logger logging.Logger
}

// Executor composes the model gateway, tool registry, memory store and audit
// recorder into one bounded reasoning loop. It holds no per-run state, so a
// single Executor is safe for concurrent use; all run state (trace id,
// transcript, loop counter) is local to one Execute call.
type Executor struct {
	llm      model.Model
	registry *tool.Registry
	memory   core.MemoryStore
	recorder *tracelog.Recorder
	maxLoops int
	flowName string
	logger   logging.Logger
}

// NewExecutor wires an Executor. Model and registry are required; memory and
// recorder may be nil, which disables recall and auditing respectively.
func NewExecutor(
	llm model.Model,
	registry *tool.Registry,
	memory core.MemoryStore,
	recorder *tracelog.Recorder,
	optFns ...func(o *Options),
) (*Executor, error) {
	if llm == nil {
		return nil, errors.New("model is required")
	}
	if registry == nil {
		return nil, errors.New("tool registry is required")
	}

	opts := Options{
		MaxLoops: DefaultMaxLoops,
		FlowName: DefaultFlowName,
		Logger:   logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MaxLoops <= 0 {
		opts.MaxLoops = DefaultMaxLoops
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	return &Executor{
		llm:      llm,
		registry: registry,
		memory:   memory,
		recorder: recorder,
		maxLoops: opts.MaxLoops,
		flowName: opts.FlowName,
		logger:   opts.Logger,
	}, nil
}

// run carries the state of one Execute call.
type run struct {
	traceID string
	userID  string
	history []core.Content
	step    int    // current reasoning pass, 1-based
	final   string // final answer once reached
	err     error  // terminal error once failed
	pending core.ToolRequest
}

// Execute performs one agent run over the supplied transcript and returns
// the final assistant-facing text. The transcript must end with a non-empty
// user message. On success the returned text is never empty.
func (e *Executor) Execute(ctx context.Context, userID string, messages []core.Content) (string, error) {
	out, _, err := e.ExecuteTraced(ctx, userID, messages)
	return out, err
}

// ExecuteTraced is Execute returning the run's trace id as well, so callers
// can look up the audit timeline afterwards. The trace id is non-empty
// whenever at least one audit event was emitted, including failed runs.
func (e *Executor) ExecuteTraced(ctx context.Context, userID string, messages []core.Content) (string, string, error) {
	if err := validateInput(messages); err != nil {
		return "", "", err
	}

	r := &run{
		traceID: core.NewID(),
		userID:  userID,
		history: append([]core.Content(nil), messages...),
	}
	latest := messages[len(messages)-1].Text()

	e.record(ctx, r, tracelog.PhaseThinking, "AgentStarted", tracelog.LevelInfo, tracelog.StatusStarted,
		"Agent run started.", map[string]any{"input": latest})

	state := statePerceiving
	var instructions string

	for {
		switch state {
		case statePerceiving:
			instructions = buildInstructions(e.registry, e.recallMemory(ctx, userID, latest))
			state = stateReasoning

		case stateReasoning:
			if r.step >= e.maxLoops {
				state = e.finish(ctx, r)
				continue
			}
			if err := ctx.Err(); err != nil {
				e.record(ctx, r, tracelog.PhaseCompleted, "AgentCancelled", tracelog.LevelWarn, tracelog.StatusFailed,
					"Run cancelled by caller.", map[string]any{"error": err.Error()})
				r.err = err
				state = stateFailed
				continue
			}
			r.step++
			state = e.reason(ctx, r, instructions)

		case stateDispatching:
			state = e.dispatch(ctx, r)

		case stateReflecting:
			// The observation was appended by dispatch. A memory save is
			// always the run's final action, so the loop ends here without
			// another reasoning pass.
			if r.pending.Name == tool.SaveMemoryName {
				state = e.finish(ctx, r)
				continue
			}
			state = stateReasoning

		case stateDone:
			e.record(ctx, r, tracelog.PhaseCompleted, "AgentSuccess", tracelog.LevelInfo, tracelog.StatusCompleted,
				"Agent run completed.", map[string]any{"output": r.final})
			return r.final, r.traceID, nil

		case stateFailed:
			return "", r.traceID, r.err
		}
	}
}

// validateInput enforces the caller contract at the boundary.
func validateInput(messages []core.Content) error {
	if len(messages) == 0 {
		return ErrNoUserMessage
	}
	last := messages[len(messages)-1]
	if last.Role != core.RoleUser || last.Text() == "" {
		return ErrNoUserMessage
	}
	return nil
}

// recallMemory fetches the user's memory digest. Any failure degrades to "no
// memory": a memory outage must never abort the run.
func (e *Executor) recallMemory(ctx context.Context, userID, query string) string {
	if e.memory == nil || userID == "" {
		return ""
	}
	digest, err := e.memory.Recall(ctx, userID, query)
	if err != nil {
		e.logger.Warn("executor.memory.recall_failed", "user_id", userID, "error", err.Error())
		return ""
	}
	return digest
}

// reason performs one model pass. It returns the next state: done (final
// text), dispatching (tool requested) or failed.
func (e *Executor) reason(ctx context.Context, r *run, instructions string) runState {
	start := time.Now()
	resp, err := e.llm.Generate(ctx, model.Request{
		Instructions: instructions,
		Contents:     r.history,
		Tools:        e.registry.Definitions(),
		ToolChoice:   model.ToolChoiceAuto,
	})
	e.logger.Debug("executor.model.call", "trace_id", r.traceID, "step", r.step,
		"duration_ms", time.Since(start).Milliseconds(), "error", err != nil)
	if err != nil {
		e.record(ctx, r, tracelog.PhaseCompleted, stepName(r.step, "ModelCallFailed"), tracelog.LevelError, tracelog.StatusFailed,
			"Model call failed.", map[string]any{"error": err.Error()})
		r.err = fmt.Errorf("model generation: %w", err)
		return stateFailed
	}
	if len(resp.Choices) == 0 {
		e.record(ctx, r, tracelog.PhaseCompleted, "InvalidAIGenerationResponse", tracelog.LevelError, tracelog.StatusFailed,
			"Model returned no candidates.", map[string]any{"response_id": resp.ID})
		r.err = ErrNoModelResponse
		return stateFailed
	}

	choice := resp.Choices[0]
	reqs := choice.Content.ToolRequests()
	if len(reqs) == 0 {
		r.history = append(r.history, choice.Content)
		return e.finish(ctx, r)
	}

	req := reqs[0]
	if req.Ref == "" {
		req.Ref = core.NewID()
	}
	r.pending = req
	r.history = append(r.history, choice.Content)
	return stateDispatching
}

// dispatch resolves and invokes the pending tool request. Unknown tools are
// fatal; execution failures become observations and the run continues.
func (e *Executor) dispatch(ctx context.Context, r *run) runState {
	req := r.pending

	impl, ok := e.registry.Get(req.Name)
	if !ok {
		r.err = fmt.Errorf("%w: %q", ErrUnknownTool, req.Name)
		return stateFailed
	}

	e.record(ctx, r, tracelog.PhasePlanning, stepName(r.step, "ToolDecision"), tracelog.LevelInfo, tracelog.StatusCompleted,
		fmt.Sprintf("Model chose tool %s.", req.Name),
		map[string]any{"tool": req.Name, "arguments": req.Arguments})

	toolCtx := core.NewToolContext(ctx, r.userID, r.traceID, req.Ref, e.logger)

	start := time.Now()
	result, err := invokeTool(impl, toolCtx, req.Arguments)
	dur := time.Since(start)
	e.logger.Info("executor.tool.executed", "trace_id", r.traceID, "tool", req.Name,
		"duration_ms", dur.Milliseconds(), "error", err != nil)

	var output any
	if err != nil {
		name, message := errorDetails(err)
		e.record(ctx, r, tracelog.PhaseExecuting, stepName(r.step, "ToolExecutionFailed"), tracelog.LevelError, tracelog.StatusFailed,
			fmt.Sprintf("Tool %s failed.", req.Name),
			map[string]any{"tool": req.Name, "error_name": name, "error_message": message})
		output = fmt.Sprintf("Error executing tool %s: %s", req.Name, message)
	} else {
		e.record(ctx, r, tracelog.PhaseExecuting, stepName(r.step, "ToolExecution"), tracelog.LevelInfo, tracelog.StatusCompleted,
			fmt.Sprintf("Tool %s completed.", req.Name), map[string]any{"tool": req.Name})
		output = result
	}

	r.history = append(r.history, core.NewToolResponseContent(req.Ref, req.Name, output, nil))
	return stateReflecting
}

// finish inspects the transcript tail and settles the run: non-empty text is
// the final answer, anything else is a failed run.
func (e *Executor) finish(ctx context.Context, r *run) runState {
	if text := lastEntryText(r.history); text != "" {
		r.final = text
		return stateDone
	}
	e.record(ctx, r, tracelog.PhaseCompleted, "InvalidAIFinalResponse", tracelog.LevelError, tracelog.StatusFailed,
		"Run ended without final text.", map[string]any{"history": serializeHistory(r.history)})
	r.err = ErrNoFinalResponse
	return stateFailed
}

// record emits one audit event, best-effort.
func (e *Executor) record(
	ctx context.Context,
	r *run,
	phase tracelog.Phase,
	step string,
	level tracelog.Level,
	status tracelog.Status,
	message string,
	data map[string]any,
) {
	e.recorder.Record(ctx, tracelog.Event{
		TraceID:  r.traceID,
		FlowName: e.flowName,
		UserID:   r.userID,
		Phase:    phase,
		StepName: step,
		Level:    level,
		Status:   status,
		Message:  message,
		Data:     data,
		Source:   eventSource,
	})
}

// invokeTool parses the serialized arguments and calls the tool. Argument
// parse failures count as execution failures, not fatal errors.
func invokeTool(impl tool.Tool, toolCtx *core.ToolContext, rawArgs string) (any, error) {
	args := map[string]any{}
	if rawArgs != "" {
		if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
			return nil, fmt.Errorf("failed to unmarshal arguments: %w", err)
		}
	}
	return impl.Call(toolCtx, args)
}

// errorDetails extracts a name/message pair from a thrown tool error.
func errorDetails(err error) (name, message string) {
	var toolErr *tool.ToolError
	if errors.As(err, &toolErr) {
		return toolErr.Code, toolErr.Message
	}
	return fmt.Sprintf("%T", err), err.Error()
}

// lastEntryText renders the text of the transcript's final entry. Tool
// responses count through their string output, so a terminating memory save
// surfaces its acknowledgement as the final answer.
func lastEntryText(history []core.Content) string {
	if len(history) == 0 {
		return ""
	}
	last := history[len(history)-1]
	if text := last.Text(); text != "" {
		return text
	}
	for _, tr := range last.ToolResponses() {
		if s, ok := tr.Output.(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// serializeHistory renders the transcript for diagnostic payloads.
func serializeHistory(history []core.Content) []map[string]any {
	out := make([]map[string]any, 0, len(history))
	for _, c := range history {
		entry := map[string]any{"role": c.Role}
		if text := c.Text(); text != "" {
			entry["text"] = text
		}
		if reqs := c.ToolRequests(); len(reqs) > 0 {
			entry["tool_requests"] = reqs
		}
		if resps := c.ToolResponses(); len(resps) > 0 {
			entry["tool_responses"] = resps
		}
		out = append(out, entry)
	}
	return out
}

// stepName labels per-pass audit steps, e.g. "Step_2_ToolDecision".
func stepName(step int, suffix string) string {
	return fmt.Sprintf("Step_%d_%s", step, suffix)
}
