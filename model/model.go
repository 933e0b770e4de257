package model

import (
	"context"
	"fmt"
	"sync"

	"github.com/brieflyai/cortex/core"
)

// ToolDefinition declaratively exposes a callable function to the model.
type ToolDefinition struct {
	Type     string             `json:"type"` // "function"
	Function FunctionDefinition `json:"function"`
}

// FunctionDefinition describes an individual function (tool) exposed to the
// model. Parameters is a JSON Schema object (draft agnostic, minimal subset
// expected).
type FunctionDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"` // JSON Schema
}

// Tool choice modes. Auto lets the model decide whether to call a tool.
const (
	ToolChoiceAuto = "auto"
	ToolChoiceNone = "none"
)

// Request captures the normalized model input produced by the executor.
type Request struct {
	Instructions string           `json:"instructions"` // System prompt for the model
	Contents     []core.Content   `json:"contents"`     // Running conversation
	Tools        []ToolDefinition `json:"tools,omitempty"`
	ToolChoice   string           `json:"tool_choice,omitempty"`
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Choice is one candidate output. Content carries text parts and at most one
// tool request part per reasoning pass.
type Choice struct {
	Content      core.Content `json:"content"`
	FinishReason string       `json:"finish_reason"` // "stop", "length", "tool_calls", etc.
}

// Response is the normalized provider output. An empty Choices slice means
// the provider produced no candidates; callers treat that as fatal.
type Response struct {
	ID      string      `json:"id"`
	Choices []Choice    `json:"choices"`
	Usage   *TokenUsage `json:"usage,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"` // "openai", "anthropic", "mock", etc.
	SupportsTools bool   `json:"supports_tools"`
}

// Model is the minimal interface required to drive generation. Generate is a
// single-shot call: given instructions, conversation and tool definitions it
// returns the provider's candidates.
type Model interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight scripted Model useful for tests & examples.
// Responses queued with Enqueue are returned in order; once the script is
// exhausted, Generate echoes the last user text. Safe for concurrent use.
type MockModel struct {
	mu       sync.Mutex
	info     Info
	script   []*Response
	requests []Request
}

// NewMockModel constructs a MockModel with basic tool support enabled.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info: Info{Name: name, Provider: "mock", SupportsTools: true},
	}
}

// Enqueue appends a scripted response returned by a future Generate call.
func (m *MockModel) Enqueue(resp *Response) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, resp)
}

// EnqueueText is shorthand for scripting a single plain-text candidate.
func (m *MockModel) EnqueueText(text string) {
	m.Enqueue(&Response{
		ID: core.NewID(),
		Choices: []Choice{{
			Content:      core.NewModelTextContent(text),
			FinishReason: "stop",
		}},
	})
}

// EnqueueToolRequest is shorthand for scripting a candidate requesting one
// tool call.
func (m *MockModel) EnqueueToolRequest(ref, name, arguments string) {
	m.Enqueue(&Response{
		ID: core.NewID(),
		Choices: []Choice{{
			Content: core.Content{
				Role: core.RoleModel,
				Parts: []core.Part{core.ToolRequestPart{ToolRequest: core.ToolRequest{
					Ref:       ref,
					Name:      name,
					Arguments: arguments,
				}}},
			},
			FinishReason: "tool_calls",
		}},
	})
}

// Requests returns a copy of all requests seen so far, in call order.
func (m *MockModel) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// Generate implements Model.
func (m *MockModel) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)

	if len(m.script) > 0 {
		next := m.script[0]
		m.script = m.script[1:]
		return next, nil
	}

	var lastUser string
	for _, c := range req.Contents {
		if c.Role == core.RoleUser {
			lastUser = c.Text()
		}
	}
	return &Response{
		ID: core.NewID(),
		Choices: []Choice{{
			Content:      core.NewModelTextContent(fmt.Sprintf("Mock response to: %s", lastUser)),
			FinishReason: "stop",
		}},
	}, nil
}

// Info implements Model interface.
func (m *MockModel) Info() Info { return m.info }
