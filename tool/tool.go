package tool

import (
	"fmt"

	"github.com/brieflyai/cortex/core"
	"github.com/brieflyai/cortex/internal/util"
)

// Tool defines the interface for structured capabilities the executor can
// dispatch to. Implementations should:
//   - Provide clear, descriptive names and descriptions (snake_case names)
//   - Define a proper JSON schema for arguments
//   - Validate arguments in Call (the executor passes them through untouched)
//   - Be safe for concurrent use across runs
type Tool interface {
	// Name returns the unique identifier for this tool, used as the
	// dispatch key in the Registry.
	Name() string

	// Description returns a human-readable description of what this tool
	// does. It is provided to the model to guide tool selection.
	Description() string

	// Parameters returns a JSON schema describing the expected arguments.
	Parameters() map[string]any

	// Call executes the tool. The ToolContext carries run identity (user,
	// trace, call ref) and a logger; args are the parsed model-supplied
	// arguments. The result must be a string or JSON-serializable value.
	Call(toolCtx *core.ToolContext, args map[string]any) (any, error)
}

// ValidationError represents parameter validation errors with detailed information.
type ValidationError = util.ValidationError

// ToolError represents errors that occur during tool execution.
type ToolError struct {
	Tool    string `json:"tool"`              // Name of the tool that failed
	Message string `json:"message"`           // Error message
	Code    string `json:"code"`              // Error code for categorization
	Details any    `json:"details,omitempty"` // Additional error details
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{
		Tool:    tool,
		Message: message,
		Code:    code,
	}
}
