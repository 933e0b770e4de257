package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brieflyai/cortex/core"
	"github.com/brieflyai/cortex/model"
)

func TestCollectToolResponses(t *testing.T) {
	req := model.Request{Contents: []core.Content{
		core.NewUserContent("hi", ""),
		core.NewToolResponseContent("ref-1", "echo", "hello", nil),
		core.NewToolResponseContent("ref-2", "lookup", map[string]any{"n": 1}, nil),
		core.NewToolResponseContent("ref-1", "echo", "duplicate ignored", nil),
	}}

	responses, order := collectToolResponses(req)
	assert.Equal(t, []string{"ref-1", "ref-2"}, order)
	assert.Equal(t, "hello", responses["ref-1"])
	assert.Equal(t, "map[n:1]", responses["ref-2"])
}

func TestToolOutputTextErrorWins(t *testing.T) {
	tr := core.ToolResponse{Output: "result", Error: "backend exploded"}
	assert.Equal(t, "backend exploded", toolOutputText(tr))

	assert.Equal(t, "result", toolOutputText(core.ToolResponse{Output: "result"}))
}

func TestBuildMessagesOrdering(t *testing.T) {
	req := model.Request{
		Instructions: "You are Cortex.",
		Contents: []core.Content{
			core.NewUserContent("run echo", ""),
			{
				Role: core.RoleModel,
				Parts: []core.Part{
					core.ToolRequestPart{ToolRequest: core.ToolRequest{
						Ref:       "ref-1",
						Name:      "echo",
						Arguments: `{"text":"hi"}`,
					}},
				},
			},
			core.NewToolResponseContent("ref-1", "echo", "hi", nil),
			core.NewModelTextContent("The echo said hi."),
		},
	}

	responses, order := collectToolResponses(req)
	messages := buildMessages(req, responses, order)

	// system, user, assistant w/ tool call, tool response, assistant text.
	require.Len(t, messages, 5)
	assert.NotNil(t, messages[0].OfSystem)
	assert.NotNil(t, messages[1].OfUser)
	require.NotNil(t, messages[2].OfAssistant)
	require.Len(t, messages[2].OfAssistant.ToolCalls, 1)
	assert.Equal(t, "ref-1", messages[2].OfAssistant.ToolCalls[0].ID)
	require.NotNil(t, messages[3].OfTool)
	assert.Equal(t, "ref-1", messages[3].OfTool.ToolCallID)
	assert.NotNil(t, messages[4].OfAssistant)
}

func TestExtractToolCalls(t *testing.T) {
	c := core.Content{
		Role: core.RoleModel,
		Parts: []core.Part{
			core.TextPart{Text: "calling a tool"},
			core.ToolRequestPart{ToolRequest: core.ToolRequest{
				Ref:       "ref-1",
				Name:      "echo",
				Arguments: `{"text":"hi"}`,
			}},
		},
	}

	calls, ids := extractToolCalls(c)
	require.Len(t, calls, 1)
	assert.Equal(t, "echo", calls[0].Function.Name)
	assert.Equal(t, `{"text":"hi"}`, calls[0].Function.Arguments)
	assert.Equal(t, []string{"ref-1"}, ids)
}

func TestBuildParamsIncludesTools(t *testing.T) {
	m := NewModel(func(o *Options) { o.Model = "gpt-test" })

	req := model.Request{Tools: []model.ToolDefinition{{
		Type: "function",
		Function: model.FunctionDefinition{
			Name:        "echo",
			Description: "Echo text back.",
			Parameters:  map[string]any{"type": "object"},
		},
	}}}

	params := m.buildParams(req, nil)
	assert.Equal(t, "gpt-test", params.Model)
	require.Len(t, params.Tools, 1)
	assert.Equal(t, "echo", params.Tools[0].Function.Name)
}

func TestInfo(t *testing.T) {
	m := NewModel()
	info := m.Info()
	assert.Equal(t, "openai", info.Provider)
	assert.True(t, info.SupportsTools)
	assert.NotEmpty(t, info.Name)
}
