package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brieflyai/cortex/core"
	"github.com/brieflyai/cortex/memory"
)

type failingSaveStore struct{}

func (failingSaveStore) Recall(context.Context, string, string) (string, error) { return "", nil }

func (failingSaveStore) Save(context.Context, core.MemoryRecord) error {
	return errors.New("write refused")
}

func TestSaveMemoryPersistsTakeaway(t *testing.T) {
	store := memory.NewInMemoryStore()
	sm := NewSaveMemoryTool(store)

	out, err := sm.Call(testToolContext(), map[string]any{"takeaway": "Prefers markdown output."})
	require.NoError(t, err)
	assert.Equal(t, "Saved to memory.", out)

	digest, err := store.Recall(context.Background(), "user-1", "markdown")
	require.NoError(t, err)
	assert.Contains(t, digest, "Prefers markdown output.")
}

func TestSaveMemoryAnonymousRunSkipsPersistence(t *testing.T) {
	store := memory.NewInMemoryStore()
	sm := NewSaveMemoryTool(store)
	anon := core.NewToolContext(context.Background(), "", "trace-1", "ref-1", nil)

	out, err := sm.Call(anon, map[string]any{"takeaway": "Something worth keeping."})
	require.NoError(t, err)
	assert.Equal(t, "Nothing saved: no user is associated with this run.", out)

	digest, err := store.Recall(context.Background(), "", "")
	require.NoError(t, err)
	assert.Empty(t, digest)
}

func TestSaveMemoryEmptyTakeawayRejected(t *testing.T) {
	sm := NewSaveMemoryTool(memory.NewInMemoryStore())

	_, err := sm.Call(testToolContext(), map[string]any{"takeaway": ""})
	require.Error(t, err)

	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, "VALIDATION_ERROR", toolErr.Code)
}

func TestSaveMemoryStoreFailureSurfaces(t *testing.T) {
	sm := NewSaveMemoryTool(failingSaveStore{})

	_, err := sm.Call(testToolContext(), map[string]any{"takeaway": "will not stick"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write refused")
}
