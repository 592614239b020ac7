// Package llm runs conversations against the Anthropic API. The
// conversation loop sends the live system prompt and the currently
// active tools on every request, dispatches tool calls through the
// toolkit, and continues until the model stops calling tools.
package llm

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/pkg/errors"

	"github.com/skillet-ai/skillet/pkg/toolkit"
)

// Config holds the model settings for the client.
type Config struct {
	Model     string
	MaxTokens int
}

// Client wraps the Anthropic API client.
type Client struct {
	anthropicClient anthropic.Client
	config          Config
}

// NewClient creates a client. Credentials come from the environment
// (ANTHROPIC_API_KEY).
func NewClient(config Config) *Client {
	if config.Model == "" {
		config.Model = "claude-sonnet-4-20250514"
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = 8192
	}

	return &Client{
		anthropicClient: anthropic.NewClient(),
		config:          config,
	}
}

// Events receives progress callbacks during a conversation turn. Any
// field may be nil.
type Events struct {
	Text       func(text string)
	ToolUse    func(name, input string)
	ToolResult func(name, output string, isError bool)
}

// Conversation is a multi-turn exchange. The system prompt is
// re-rendered on every request so that newly activated skills take
// effect mid-conversation.
type Conversation struct {
	client       *Client
	toolkit      *toolkit.Toolkit
	systemPrompt func() string
	messages     []anthropic.MessageParam
}

// NewConversation starts an empty conversation backed by tk.
func (c *Client) NewConversation(tk *toolkit.Toolkit, systemPrompt func() string) *Conversation {
	return &Conversation{
		client:       c,
		toolkit:      tk,
		systemPrompt: systemPrompt,
	}
}

// Ask runs a single-turn exchange and returns the final text.
func (c *Client) Ask(ctx context.Context, tk *toolkit.Toolkit, systemPrompt func() string, query string, events Events) (string, error) {
	return c.NewConversation(tk, systemPrompt).Send(ctx, query, events)
}

// Send appends a user message and runs the tool loop until the model
// produces a turn without tool calls. Returns the concatenated text
// of the final assistant message.
func (conv *Conversation) Send(ctx context.Context, userText string, events Events) (string, error) {
	conv.messages = append(conv.messages, anthropic.NewUserMessage(anthropic.NewTextBlock(userText)))

	for {
		message, err := conv.client.anthropicClient.Messages.New(ctx, anthropic.MessageNewParams{
			Model:     anthropic.Model(conv.client.config.Model),
			MaxTokens: int64(conv.client.config.MaxTokens),
			System: []anthropic.TextBlockParam{
				{Text: conv.systemPrompt()},
			},
			Messages: conv.messages,
			Tools:    ToAnthropicTools(conv.toolkit.ActiveTools()),
		})
		if err != nil {
			return "", errors.Wrap(err, "message request failed")
		}

		conv.messages = append(conv.messages, message.ToParam())

		var textOutput strings.Builder
		var toolResults []anthropic.ContentBlockParamUnion
		for _, block := range message.Content {
			switch variant := block.AsAny().(type) {
			case anthropic.TextBlock:
				textOutput.WriteString(variant.Text)
				if events.Text != nil {
					events.Text(variant.Text)
				}
			case anthropic.ToolUseBlock:
				rawInput := string(variant.JSON.Input.Raw())
				if events.ToolUse != nil {
					events.ToolUse(variant.Name, rawInput)
				}

				var args map[string]any
				if err := json.Unmarshal([]byte(rawInput), &args); err != nil {
					args = nil
				}
				resp := conv.toolkit.Invoke(ctx, variant.Name, args)
				if events.ToolResult != nil {
					events.ToolResult(variant.Name, resp.Content, resp.IsError)
				}
				toolResults = append(toolResults, anthropic.NewToolResultBlock(variant.ID, resp.Content, resp.IsError))
			}
		}

		if len(toolResults) == 0 {
			return textOutput.String(), nil
		}
		conv.messages = append(conv.messages, anthropic.NewUserMessage(toolResults...))
	}
}

// ToAnthropicTools converts toolkit tools into the wire format.
func ToAnthropicTools(tools []*toolkit.Tool) []anthropic.ToolUnionParam {
	anthropicTools := make([]anthropic.ToolUnionParam, len(tools))
	for i, tool := range tools {
		toolParam := anthropic.ToolParam{
			Name:        tool.Name,
			Description: anthropic.String(tool.Description),
		}
		if tool.InputSchema != nil {
			toolParam.InputSchema = anthropic.ToolInputSchemaParam{
				Properties: tool.InputSchema.Properties,
			}
		}
		anthropicTools[i] = anthropic.ToolUnionParam{OfTool: &toolParam}
	}
	return anthropicTools
}
