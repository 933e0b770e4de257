package core

import (
	"strings"

	"github.com/google/uuid"
)

// Conversation roles. The model role covers assistant output; the tool role
// carries tool invocation results back into the transcript.
const (
	RoleUser   = "user"
	RoleModel  = "model"
	RoleTool   = "tool"
	RoleSystem = "system"
)

// Part represents a polymorphic segment of role-based content. Concrete part
// types implement the unexported isPart marker enabling a closed set.
type Part interface{ isPart() }

// TextPart is a plain text content segment.
type TextPart struct {
	Text     string         // Plain UTF-8 text
	Metadata map[string]any // Optional producer-provided metadata
}

// isPart implements the Part interface for TextPart.
func (TextPart) isPart() {}

// DataPart is a structured data segment (e.g., JSON object map).
type DataPart struct {
	Data     map[string]any // Structured key/value payload
	Metadata map[string]any
}

// isPart implements the Part interface for DataPart.
func (DataPart) isPart() {}

// FilePart references an external media attachment (e.g. an image a user
// attached to their message).
type FilePart struct {
	URI      string  // External retrieval URI
	MimeType *string // Optional MIME type
	Name     *string // Original filename hint
	Metadata map[string]any
}

// isPart implements the Part interface for FilePart.
func (FilePart) isPart() {}

// ToolRequest describes a tool invocation requested by the model. Ref is the
// correlation token tying the eventual ToolResponse back to this request.
type ToolRequest struct {
	Ref       string `json:"ref,omitempty"`
	Name      string `json:"name"`
	Arguments string `json:"arguments,omitempty"` // Serialized argument payload (JSON)
}

// ToolRequestPart wraps a ToolRequest as a content part.
type ToolRequestPart struct {
	ToolRequest ToolRequest
	Metadata    map[string]any
}

// isPart implements the Part interface for ToolRequestPart.
func (ToolRequestPart) isPart() {}

// ToolResponse describes the outcome of a previously requested tool call.
// Output holds the successful result (any JSON-serializable shape); Error is
// populated instead when the invocation failed.
type ToolResponse struct {
	Ref    string `json:"ref,omitempty"` // Matches originating ToolRequest Ref
	Name   string `json:"name"`
	Output any    `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

// ToolResponsePart wraps a ToolResponse as a content part.
type ToolResponsePart struct {
	ToolResponse ToolResponse
	Metadata     map[string]any
}

// isPart implements the Part interface for ToolResponsePart.
func (ToolResponsePart) isPart() {}

// Content holds role + ordered parts.
type Content struct {
	Role  string `json:"role,omitempty"` // Conversation role (user, model, tool, system)
	Parts []Part `json:"parts"`          // Ordered heterogeneous parts
}

// NewUserContent builds a user content entry with a text part and an optional
// image attachment.
func NewUserContent(text, imageURL string) Content {
	parts := []Part{TextPart{Text: text}}
	if imageURL != "" {
		parts = append(parts, FilePart{URI: imageURL})
	}
	return Content{Role: RoleUser, Parts: parts}
}

// NewModelTextContent builds a model-authored content entry with a single
// text part.
func NewModelTextContent(text string) Content {
	return Content{Role: RoleModel, Parts: []Part{TextPart{Text: text}}}
}

// NewToolResponseContent builds a tool-role content entry carrying one
// ToolResponse. If err is non-nil its message is copied into the Error field.
func NewToolResponseContent(ref, name string, output any, err error) Content {
	tr := ToolResponse{Ref: ref, Name: name, Output: output}
	if err != nil {
		tr.Error = err.Error()
	}
	return Content{Role: RoleTool, Parts: []Part{ToolResponsePart{ToolResponse: tr}}}
}

// Text concatenates all text parts preserving their order.
func (c Content) Text() string {
	var sb strings.Builder
	for _, p := range c.Parts {
		if tp, ok := p.(TextPart); ok {
			sb.WriteString(tp.Text)
		}
	}
	return sb.String()
}

// ToolRequests returns any ToolRequest parts contained within the content
// preserving their original order.
func (c Content) ToolRequests() []ToolRequest {
	var reqs []ToolRequest
	for _, p := range c.Parts {
		if tr, ok := p.(ToolRequestPart); ok {
			reqs = append(reqs, tr.ToolRequest)
		}
	}
	return reqs
}

// ToolResponses returns any ToolResponse parts contained within the content
// preserving their original order.
func (c Content) ToolResponses() []ToolResponse {
	var resps []ToolResponse
	for _, p := range c.Parts {
		if tr, ok := p.(ToolResponsePart); ok {
			resps = append(resps, tr.ToolResponse)
		}
	}
	return resps
}

// NewID generates a new unique identifier used for trace IDs, tool call refs
// and memory record IDs.
func NewID() string { return uuid.NewString() }
