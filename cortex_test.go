package cortex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brieflyai/cortex/core"
	"github.com/brieflyai/cortex/memory"
	"github.com/brieflyai/cortex/model"
	"github.com/brieflyai/cortex/tool"
	"github.com/brieflyai/cortex/tracelog"
)

func userMessages(text string) []core.Content {
	return []core.Content{core.NewUserContent(text, "")}
}

func TestNewDefaultsAndRun(t *testing.T) {
	llm := model.NewMockModel("test")
	llm.EnqueueText("Hello back!")

	c, err := New(llm)
	require.NoError(t, err)

	out, err := c.RunText(context.Background(), "user-1", "Hello")
	require.NoError(t, err)
	assert.Equal(t, "Hello back!", out)
}

func TestRunTracedExposesTimeline(t *testing.T) {
	llm := model.NewMockModel("test")
	llm.EnqueueToolRequest("call-1", "generate_written_content", `{"topic":"go testing"}`)
	llm.EnqueueText("Draft is ready.") // inner tool call consumes this
	llm.EnqueueText("Here is your article about go testing.")

	c, err := New(llm)
	require.NoError(t, err)

	out, traceID, err := c.RunTraced(context.Background(), "user-1",
		userMessages("Write an article about go testing"))
	require.NoError(t, err)
	assert.Equal(t, "Here is your article about go testing.", out)
	require.NotEmpty(t, traceID)

	events, err := c.Trace(context.Background(), traceID)
	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.Equal(t, "AgentStarted", events[0].StepName)
	assert.Equal(t, "AgentSuccess", events[len(events)-1].StepName)
	for _, ev := range events {
		assert.Equal(t, traceID, ev.TraceID)
	}
}

func TestDefaultToolsCoverContentSuite(t *testing.T) {
	llm := model.NewMockModel("test")
	tools := DefaultTools(llm, memory.NewInMemoryStore())

	registry, err := tool.NewRegistry(tools...)
	require.NoError(t, err)
	assert.Equal(t, []string{
		tool.ImageName,
		tool.PromptName,
		tool.StructuredDataName,
		tool.WrittenContentName,
		tool.SaveMemoryName,
	}, registry.Names())
}

func TestNewCustomStoresAndTools(t *testing.T) {
	llm := model.NewMockModel("test")
	llm.EnqueueToolRequest("call-1", tool.SaveMemoryName, `{"takeaway":"Likes custom wiring."}`)

	mem := memory.NewInMemoryStore()
	traces := tracelog.NewInMemoryStore()

	c, err := New(llm, func(o *Options) {
		o.MemoryStore = mem
		o.TraceStore = traces
		o.Tools = []tool.Tool{tool.NewSaveMemoryTool(mem)}
		o.MaxLoops = 3
	})
	require.NoError(t, err)

	out, traceID, err := c.RunTraced(context.Background(), "user-1",
		userMessages("Remember that I like custom wiring"))
	require.NoError(t, err)
	assert.Equal(t, "Saved to memory.", out)

	digest, err := mem.Recall(context.Background(), "user-1", "custom wiring")
	require.NoError(t, err)
	assert.Contains(t, digest, "Likes custom wiring.")

	events, err := traces.ListByTrace(context.Background(), traceID)
	require.NoError(t, err)
	assert.NotEmpty(t, events)
}

func TestNewRejectsDuplicateTools(t *testing.T) {
	llm := model.NewMockModel("test")
	mem := memory.NewInMemoryStore()

	_, err := New(llm, func(o *Options) {
		o.Tools = []tool.Tool{tool.NewSaveMemoryTool(mem), tool.NewSaveMemoryTool(mem)}
	})
	assert.Error(t, err)
}
