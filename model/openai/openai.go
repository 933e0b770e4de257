// Package openai provides an implementation of model.Model using the OpenAI
// Chat Completions API (including function/tool calling). It adapts Cortex's
// normalized Request/Response structures into the SDK's message format and
// back.
package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"

	"github.com/brieflyai/cortex/core"
	"github.com/brieflyai/cortex/model"
)

// Options configure the OpenAI model adapter.
// Fields mirror a subset of Chat Completion parameters intentionally kept
// minimal; extend via functional options without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Model wraps the OpenAI Chat Completions API behind the generic model.Model interface.
type Model struct {
	client *openai.Client
	opts   Options
}

// NewModel creates a new OpenAI model using the official client
func NewModel(optFns ...func(o *Options)) *Model {
	client := openai.NewClient()
	return NewModelFromClient(&client, optFns...)
}

// NewModelFromClient creates a new OpenAI model from an existing client
func NewModelFromClient(client *openai.Client, optFns ...func(o *Options)) *Model {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Model{client: client, opts: opts}
}

// Generate implements single-shot generation with function/tool calling.
func (m *Model) Generate(ctx context.Context, req model.Request) (*model.Response, error) {
	toolResponses, order := collectToolResponses(req)
	messages := buildMessages(req, toolResponses, order)
	params := m.buildParams(req, messages)

	resp, err := m.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}

	out := &model.Response{ID: resp.ID}
	for _, ch := range resp.Choices {
		parts := make([]core.Part, 0, len(ch.Message.ToolCalls)+1)
		if ch.Message.Content != "" {
			parts = append(parts, core.TextPart{Text: ch.Message.Content})
		}
		for _, tc := range ch.Message.ToolCalls {
			parts = append(parts, core.ToolRequestPart{ToolRequest: core.ToolRequest{
				Ref:       tc.ID,
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			}})
		}
		out.Choices = append(out.Choices, model.Choice{
			Content:      core.Content{Role: core.RoleModel, Parts: parts},
			FinishReason: string(ch.FinishReason),
		})
	}
	if resp.Usage.TotalTokens > 0 {
		out.Usage = &model.TokenUsage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		}
	}
	return out, nil
}

// collectToolResponses indexes tool responses by ref preserving first-seen order.
func collectToolResponses(req model.Request) (map[string]string, []string) {
	responses := map[string]string{}
	order := []string{}
	for _, c := range req.Contents {
		if c.Role != core.RoleTool {
			continue
		}
		for _, tr := range c.ToolResponses() {
			if tr.Ref == "" {
				continue
			}
			if _, exists := responses[tr.Ref]; exists {
				continue
			}
			responses[tr.Ref] = toolOutputText(tr)
			order = append(order, tr.Ref)
		}
	}
	return responses, order
}

// toolOutputText renders a tool response as the plain text fed back to the model.
func toolOutputText(tr core.ToolResponse) string {
	if tr.Error != "" {
		return tr.Error
	}
	if s, ok := tr.Output.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", tr.Output)
}

// buildMessages converts normalized contents into OpenAI chat messages while
// attaching matching tool responses immediately after model tool requests.
func buildMessages(
	req model.Request,
	toolResponses map[string]string,
	order []string,
) []openai.ChatCompletionMessageParamUnion {
	var messages []openai.ChatCompletionMessageParamUnion
	if req.Instructions != "" {
		messages = append(messages, openai.SystemMessage(req.Instructions))
	}
	for _, c := range req.Contents {
		if c.Role == core.RoleTool {
			continue
		}
		switch c.Role {
		case core.RoleSystem:
			messages = append(messages, openai.SystemMessage(c.Text()))
		case core.RoleUser:
			messages = append(messages, userMessage(c))
		case core.RoleModel:
			toolCalls, callIDs := extractToolCalls(c)
			if len(toolCalls) == 0 {
				messages = append(messages, openai.AssistantMessage(c.Text()))
				continue
			}
			messages = append(
				messages,
				openai.ChatCompletionMessageParamUnion{OfAssistant: &openai.ChatCompletionAssistantMessageParam{
					Role:      "assistant",
					ToolCalls: toolCalls,
				}},
			)
			for _, id := range callIDs {
				if id == "" {
					continue
				}
				if resp, ok := toolResponses[id]; ok {
					messages = append(messages, openai.ToolMessage(resp, id))
					delete(toolResponses, id)
				}
			}
		default:
			if text := c.Text(); text != "" {
				messages = append(messages, openai.UserMessage(text))
			}
		}
	}
	for _, id := range order {
		if resp, ok := toolResponses[id]; ok {
			messages = append(messages, openai.ToolMessage(resp, id))
		}
	}
	return messages
}

// userMessage converts a user content entry, attaching image parts for any
// file attachments.
func userMessage(c core.Content) openai.ChatCompletionMessageParamUnion {
	var images []string
	var textBuilder strings.Builder
	for _, p := range c.Parts {
		switch part := p.(type) {
		case core.TextPart:
			textBuilder.WriteString(part.Text)
		case core.FilePart:
			if part.URI != "" {
				images = append(images, part.URI)
			}
		}
	}
	if len(images) == 0 {
		return openai.UserMessage(textBuilder.String())
	}
	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(textBuilder.String()),
	}
	for _, uri := range images {
		parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: uri}))
	}
	return openai.UserMessage(parts)
}

// extractToolCalls extracts tool request parts and returns OpenAI formatted tool calls + ordered IDs.
func extractToolCalls(c core.Content) ([]openai.ChatCompletionMessageToolCallParam, []string) {
	var toolCalls []openai.ChatCompletionMessageToolCallParam
	var callIDs []string
	for _, tr := range c.ToolRequests() {
		toolCalls = append(toolCalls, openai.ChatCompletionMessageToolCallParam{
			ID:   tr.Ref,
			Type: "function",
			Function: openai.ChatCompletionMessageToolCallFunctionParam{
				Name:      tr.Name,
				Arguments: tr.Arguments,
			},
		})
		callIDs = append(callIDs, tr.Ref)
	}
	return toolCalls, callIDs
}

// buildParams assembles the OpenAI request parameters including tool definitions.
func (m *Model) buildParams(
	req model.Request,
	messages []openai.ChatCompletionMessageParamUnion,
) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Messages:            messages,
		Model:               m.opts.Model,
		Temperature:         openai.Float(m.opts.Temperature),
		MaxCompletionTokens: openai.Int(m.opts.MaxCompletionTokens),
	}
	if len(req.Tools) == 0 {
		return params
	}
	tools := make([]openai.ChatCompletionToolParam, len(req.Tools))
	for i, tdef := range req.Tools {
		tools[i] = openai.ChatCompletionToolParam{
			Type: "function",
			Function: openai.FunctionDefinitionParam{
				Name:        tdef.Function.Name,
				Description: openai.String(tdef.Function.Description),
				Parameters:  tdef.Function.Parameters,
			},
		}
	}
	params.Tools = tools
	return params
}

// Info returns metadata describing this OpenAI model implementation.
func (m *Model) Info() model.Info {
	return model.Info{
		Name:          m.opts.Model,
		Provider:      "openai",
		SupportsTools: true,
	}
}
