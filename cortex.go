// Package cortex provides a high-level façade over the agent Executor and its
// service abstractions (model gateway, tool registry, long-term memory and the
// audit trail). Most applications interact with this package by:
//  1. Creating a Cortex via New() with a model and the tools the agent may use
//  2. Calling Run() with a user id and conversation transcript
//  3. Reading the final answer, and the audit timeline via Trace()
//
// The façade delegates orchestration to agent.Executor while keeping setup
// ergonomics concise. All defaults are safe for local development and testing;
// production deployments typically supply the mongo-backed stores and a
// structured logger.
package cortex

import (
	"context"

	"github.com/brieflyai/cortex/agent"
	"github.com/brieflyai/cortex/core"
	"github.com/brieflyai/cortex/logging"
	"github.com/brieflyai/cortex/memory"
	"github.com/brieflyai/cortex/model"
	"github.com/brieflyai/cortex/tool"
	"github.com/brieflyai/cortex/tracelog"
)

// Options configures the Cortex instance.
type Options struct {
	// MaxLoops caps the reasoning passes per run. Zero selects the default.
	MaxLoops int

	// FlowName tags every audit event emitted by this instance.
	FlowName string

	// Tools the agent may dispatch to. When nil, the built-in content suite
	// (written content, prompt, image, structured data) plus the memory
	// save tool is registered against the same model that drives reasoning.
	Tools []tool.Tool

	// Stores (default to in-memory implementations if not provided)
	MemoryStore core.MemoryStore
	TraceStore  tracelog.Store

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Cortex is the high-level façade aggregating the executor and its services.
type Cortex struct {
	opts     Options
	executor *agent.Executor
	traces   tracelog.Store
}

// New creates a Cortex instance around the given model with optional
// overrides. Any unset service is initialized with an in-memory
// implementation.
func New(llm model.Model, optFns ...func(o *Options)) (*Cortex, error) {
	opts := Options{
		MaxLoops:    agent.DefaultMaxLoops,
		FlowName:    agent.DefaultFlowName,
		MemoryStore: memory.NewInMemoryStore(),
		TraceStore:  tracelog.NewInMemoryStore(),
		Logger:      logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	tools := opts.Tools
	if tools == nil {
		tools = DefaultTools(llm, opts.MemoryStore)
	}
	registry, err := tool.NewRegistry(tools...)
	if err != nil {
		return nil, err
	}

	recorder := tracelog.NewRecorder(opts.TraceStore, opts.Logger)

	executor, err := agent.NewExecutor(llm, registry, opts.MemoryStore, recorder,
		func(o *agent.Options) {
			o.MaxLoops = opts.MaxLoops
			o.FlowName = opts.FlowName
			o.Logger = opts.Logger
		})
	if err != nil {
		return nil, err
	}

	return &Cortex{opts: opts, executor: executor, traces: opts.TraceStore}, nil
}

// DefaultTools returns the built-in tool suite: the four content generation
// tools backed by llm and the memory save tool backed by store.
func DefaultTools(llm model.Model, store core.MemoryStore) []tool.Tool {
	return []tool.Tool{
		tool.NewWrittenContentTool(llm),
		tool.NewPromptGeneratorTool(llm),
		tool.NewImageGeneratorTool(llm),
		tool.NewStructuredDataTool(llm),
		tool.NewSaveMemoryTool(store),
	}
}

// Run executes one agent invocation over the transcript and returns the final
// assistant-facing text. The transcript must end with a non-empty user
// message; userID may be empty for anonymous runs.
func (c *Cortex) Run(ctx context.Context, userID string, messages []core.Content) (string, error) {
	return c.executor.Execute(ctx, userID, messages)
}

// RunTraced is Run returning the run's trace id as well, for use with Trace.
func (c *Cortex) RunTraced(ctx context.Context, userID string, messages []core.Content) (string, string, error) {
	return c.executor.ExecuteTraced(ctx, userID, messages)
}

// RunText is a convenience wrapper for single-message conversations.
func (c *Cortex) RunText(ctx context.Context, userID, text string) (string, error) {
	return c.Run(ctx, userID, []core.Content{core.NewUserContent(text, "")})
}

// Trace returns the ordered audit timeline of one run.
func (c *Cortex) Trace(ctx context.Context, traceID string) ([]tracelog.Event, error) {
	return c.traces.ListByTrace(ctx, traceID)
}
