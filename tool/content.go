package tool

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/brieflyai/cortex/core"
	"github.com/brieflyai/cortex/model"
)

// Registry keys of the built-in content generation tools.
const (
	WrittenContentName = "generate_written_content"
	PromptName         = "generate_prompt"
	ImageName          = "generate_image"
	StructuredDataName = "generate_structured_data"
)

// generate runs one sub-task generation against the backing model and
// returns the first candidate's text.
func generate(toolCtx *core.ToolContext, llm model.Model, instructions, input string) (string, error) {
	resp, err := llm.Generate(toolCtx.Context(), model.Request{
		Instructions: instructions,
		Contents:     []core.Content{core.NewUserContent(input, "")},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no candidates")
	}
	text := resp.Choices[0].Content.Text()
	if text == "" {
		return "", fmt.Errorf("model returned an empty candidate")
	}
	return text, nil
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

// NewWrittenContentTool builds the long-form writing tool. It drives a
// secondary model call with a writing brief assembled from the arguments.
func NewWrittenContentTool(llm model.Model) *FunctionTool {
	return NewFunctionTool(
		WrittenContentName,
		"Generate polished written content (articles, posts, emails) on a topic, optionally matching a tone and audience.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"topic":    map[string]any{"type": "string", "description": "What the content should cover"},
				"tone":     map[string]any{"type": "string", "description": "Desired tone, e.g. formal, playful"},
				"audience": map[string]any{"type": "string", "description": "Who the content is for"},
			},
			"required": []string{"topic"},
		},
		func(toolCtx *core.ToolContext, args map[string]any) (any, error) {
			var brief strings.Builder
			brief.WriteString("Topic: " + stringArg(args, "topic"))
			if tone := stringArg(args, "tone"); tone != "" {
				brief.WriteString("\nTone: " + tone)
			}
			if audience := stringArg(args, "audience"); audience != "" {
				brief.WriteString("\nAudience: " + audience)
			}
			return generate(toolCtx, llm,
				"You are an expert content writer. Produce the finished piece only, no preamble.",
				brief.String())
		},
	)
}

// NewPromptGeneratorTool builds the prompt refinement tool: given a rough
// goal it produces a high-quality reusable prompt.
func NewPromptGeneratorTool(llm model.Model) *FunctionTool {
	return NewFunctionTool(
		PromptName,
		"Turn a rough goal into a detailed, reusable prompt for a generative model.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"goal":   map[string]any{"type": "string", "description": "What the final prompt should achieve"},
				"medium": map[string]any{"type": "string", "description": "Target medium, e.g. text, image, code"},
			},
			"required": []string{"goal"},
		},
		func(toolCtx *core.ToolContext, args map[string]any) (any, error) {
			input := "Goal: " + stringArg(args, "goal")
			if medium := stringArg(args, "medium"); medium != "" {
				input += "\nMedium: " + medium
			}
			return generate(toolCtx, llm,
				"You are a prompt engineer. Respond with the final prompt text only.",
				input)
		},
	)
}

// NewImageGeneratorTool builds the image generation tool. The backing model
// acts as the image backend; its text output is the rendered image reference
// (URL or data URI) returned to the conversation.
func NewImageGeneratorTool(llm model.Model) *FunctionTool {
	return NewFunctionTool(
		ImageName,
		"Generate an image from a description and return a reference to the rendered result.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"description": map[string]any{"type": "string", "description": "What the image should depict"},
				"style":       map[string]any{"type": "string", "description": "Visual style, e.g. photorealistic, watercolor"},
			},
			"required": []string{"description"},
		},
		func(toolCtx *core.ToolContext, args map[string]any) (any, error) {
			input := stringArg(args, "description")
			if style := stringArg(args, "style"); style != "" {
				input += "\nStyle: " + style
			}
			return generate(toolCtx, llm,
				"You are an image generation backend. Render the described image and respond with the image URL only.",
				input)
		},
	)
}

// NewStructuredDataTool builds the structured data tool. The model is asked
// for a single JSON object which is parsed and returned as structured output;
// unparseable output is surfaced as an execution error so the orchestrating
// loop can react to it.
func NewStructuredDataTool(llm model.Model) *FunctionTool {
	return NewFunctionTool(
		StructuredDataName,
		"Generate structured JSON data matching a description, e.g. sample records or configuration.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"description": map[string]any{"type": "string", "description": "What the data should represent"},
				"shape":       map[string]any{"type": "string", "description": "Optional sketch of the expected fields"},
			},
			"required": []string{"description"},
		},
		func(toolCtx *core.ToolContext, args map[string]any) (any, error) {
			input := stringArg(args, "description")
			if shape := stringArg(args, "shape"); shape != "" {
				input += "\nExpected shape: " + shape
			}
			text, err := generate(toolCtx, llm,
				"You generate structured data. Respond with a single valid JSON object and nothing else.",
				input)
			if err != nil {
				return nil, err
			}
			var data map[string]any
			if err := json.Unmarshal([]byte(stripCodeFence(text)), &data); err != nil {
				return nil, fmt.Errorf("model output is not valid JSON: %w", err)
			}
			return data, nil
		},
	)
}

// stripCodeFence removes a surrounding markdown code fence if present.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
