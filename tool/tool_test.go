package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brieflyai/cortex/core"
)

func testToolContext() *core.ToolContext {
	return core.NewToolContext(context.Background(), "user-1", "trace-1", "ref-1", nil)
}

func newEchoTool() *FunctionTool {
	return NewFunctionTool(
		"echo",
		"Echo the provided text back.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"text": map[string]any{"type": "string"},
			},
			"required": []string{"text"},
		},
		func(_ *core.ToolContext, args map[string]any) (any, error) {
			return args["text"], nil
		},
	)
}

func TestRegistryConstruction(t *testing.T) {
	r, err := NewRegistry(newEchoTool())
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())

	got, ok := r.Get("echo")
	require.True(t, ok)
	assert.Equal(t, "echo", got.Name())

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	_, err := NewRegistry(newEchoTool(), newEchoTool())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestRegistryRejectsEmptyName(t *testing.T) {
	empty := NewFunctionTool("", "nameless", map[string]any{"type": "object"}, nil)
	_, err := NewRegistry(empty)
	assert.Error(t, err)
}

func TestRegistryDefinitionsSorted(t *testing.T) {
	b := NewFunctionTool("beta", "second", map[string]any{"type": "object"}, nil)
	a := NewFunctionTool("alpha", "first", map[string]any{"type": "object"}, nil)
	r := MustNewRegistry(b, a)

	defs := r.Definitions()
	require.Len(t, defs, 2)
	assert.Equal(t, "alpha", defs[0].Function.Name)
	assert.Equal(t, "beta", defs[1].Function.Name)
	assert.Equal(t, "function", defs[0].Type)
	assert.Equal(t, "first", defs[0].Function.Description)
}

func TestFunctionToolCall(t *testing.T) {
	echo := newEchoTool()

	out, err := echo.Call(testToolContext(), map[string]any{"text": "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", out)
}

func TestFunctionToolValidationError(t *testing.T) {
	echo := newEchoTool()

	_, err := echo.Call(testToolContext(), map[string]any{})
	require.Error(t, err)

	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, "VALIDATION_ERROR", toolErr.Code)
	assert.Equal(t, "echo", toolErr.Tool)
}

func TestFunctionToolWrapsExecutionError(t *testing.T) {
	failing := NewFunctionTool("failing", "always fails",
		map[string]any{"type": "object", "properties": map[string]any{}},
		func(_ *core.ToolContext, _ map[string]any) (any, error) {
			return nil, errors.New("backend exploded")
		},
	)

	_, err := failing.Call(testToolContext(), map[string]any{})
	require.Error(t, err)

	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, "EXECUTION_ERROR", toolErr.Code)
	assert.Equal(t, "backend exploded", toolErr.Message)
}

func TestFunctionToolForwardsToolError(t *testing.T) {
	custom := NewFunctionTool("custom", "custom codes",
		map[string]any{"type": "object", "properties": map[string]any{}},
		func(_ *core.ToolContext, _ map[string]any) (any, error) {
			return nil, NewToolError("custom", "quota exhausted", "RATE_LIMITED")
		},
	)

	_, err := custom.Call(testToolContext(), map[string]any{})
	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, "RATE_LIMITED", toolErr.Code)
}

func TestNewFunctionToolFromStruct(t *testing.T) {
	type args struct {
		Topic string `json:"topic" description:"What to write about"`
		Tone  string `json:"tone,omitempty"`
	}
	ft := NewFunctionToolFromStruct("writer", "writes things", args{},
		func(_ *core.ToolContext, a map[string]any) (any, error) {
			return a["topic"], nil
		},
	)

	params := ft.Parameters()
	assert.Equal(t, "object", params["type"])
	props, ok := params["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "topic")
	assert.Contains(t, props, "tone")
	assert.Equal(t, []string{"topic"}, params["required"])

	// Optional field may be omitted; required field may not.
	_, err := ft.Call(testToolContext(), map[string]any{"topic": "go"})
	assert.NoError(t, err)
	_, err = ft.Call(testToolContext(), map[string]any{"tone": "formal"})
	assert.Error(t, err)
}

func TestToolErrorMessage(t *testing.T) {
	withCode := NewToolError("echo", "broke", "EXECUTION_ERROR")
	assert.Equal(t, "tool error [EXECUTION_ERROR] in echo: broke", withCode.Error())

	noCode := &ToolError{Tool: "echo", Message: "broke"}
	assert.Equal(t, "tool error in echo: broke", noCode.Error())
}
