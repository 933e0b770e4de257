package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brieflyai/cortex/core"
)

func TestMockModelScriptedResponses(t *testing.T) {
	m := NewMockModel("test")
	m.EnqueueText("first")
	m.EnqueueText("second")

	req := Request{Contents: []core.Content{core.NewUserContent("hello", "")}}

	resp, err := m.Generate(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Choices, 1)
	assert.Equal(t, "first", resp.Choices[0].Content.Text())

	resp, err = m.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "second", resp.Choices[0].Content.Text())
}

func TestMockModelEchoesWhenScriptExhausted(t *testing.T) {
	m := NewMockModel("test")

	resp, err := m.Generate(context.Background(), Request{
		Contents: []core.Content{core.NewUserContent("ping", "")},
	})
	require.NoError(t, err)
	assert.Equal(t, "Mock response to: ping", resp.Choices[0].Content.Text())
}

func TestMockModelToolRequestScript(t *testing.T) {
	m := NewMockModel("test")
	m.EnqueueToolRequest("ref-1", "echo", `{"text":"hi"}`)

	resp, err := m.Generate(context.Background(), Request{
		Contents: []core.Content{core.NewUserContent("run echo", "")},
	})
	require.NoError(t, err)
	require.Len(t, resp.Choices, 1)
	assert.Equal(t, "tool_calls", resp.Choices[0].FinishReason)

	reqs := resp.Choices[0].Content.ToolRequests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "ref-1", reqs[0].Ref)
	assert.Equal(t, "echo", reqs[0].Name)
	assert.Equal(t, `{"text":"hi"}`, reqs[0].Arguments)
}

func TestMockModelRecordsRequests(t *testing.T) {
	m := NewMockModel("test")

	_, err := m.Generate(context.Background(), Request{
		Instructions: "be brief",
		Contents:     []core.Content{core.NewUserContent("one", "")},
	})
	require.NoError(t, err)
	_, err = m.Generate(context.Background(), Request{
		Contents: []core.Content{core.NewUserContent("two", "")},
	})
	require.NoError(t, err)

	reqs := m.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "be brief", reqs[0].Instructions)
	assert.Equal(t, "two", reqs[1].Contents[0].Text())
}

func TestMockModelHonorsContextCancellation(t *testing.T) {
	m := NewMockModel("test")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMockModelInfo(t *testing.T) {
	m := NewMockModel("scripted")
	info := m.Info()
	assert.Equal(t, "scripted", info.Name)
	assert.Equal(t, "mock", info.Provider)
	assert.True(t, info.SupportsTools)
}
