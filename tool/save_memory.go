package tool

import (
	"fmt"

	"github.com/brieflyai/cortex/core"
)

// SaveMemoryName is the registry key of the memory persistence tool. The
// executor treats this tool specially: its invocation ends the run.
const SaveMemoryName = "save_memory"

type saveMemoryArgs struct {
	Takeaway string `json:"takeaway" description:"The key takeaway from this interaction worth remembering for future requests"`
}

// NewSaveMemoryTool builds the tool that persists a key takeaway to the
// user's long-term memory. User and trace identity come from the ToolContext,
// not from model-supplied arguments.
func NewSaveMemoryTool(store core.MemoryStore) *FunctionTool {
	return NewFunctionToolFromStruct(
		SaveMemoryName,
		"Save a key takeaway from this conversation to the user's long-term memory. Call at most once, as the final action of a successful task.",
		saveMemoryArgs{},
		func(toolCtx *core.ToolContext, args map[string]any) (any, error) {
			takeaway, _ := args["takeaway"].(string)
			if takeaway == "" {
				return nil, NewToolError(SaveMemoryName, "takeaway must be a non-empty string", "VALIDATION_ERROR")
			}
			if toolCtx.UserID() == "" {
				// Anonymous runs have no memory to write to; acknowledge
				// without persisting so the run can still terminate cleanly.
				return "Nothing saved: no user is associated with this run.", nil
			}
			rec := core.MemoryRecord{
				UserID:  toolCtx.UserID(),
				TraceID: toolCtx.TraceID(),
				Content: takeaway,
			}
			if err := store.Save(toolCtx.Context(), rec); err != nil {
				return nil, fmt.Errorf("saving memory: %w", err)
			}
			return "Saved to memory.", nil
		},
	)
}
