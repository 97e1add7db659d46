package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role      string // "user", "assistant", "system", "tool"
	Content   string
	ToolCalls []ToolCall // set when the assistant requests tool execution
	ToolName  string     // set on role "tool" messages carrying a tool result
}

// Tool describes a function the model may call during a chat turn.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]any // JSON schema for the arguments object
}

// ToolCall is a single tool invocation requested by the model.
type ToolCall struct {
	Name      string
	Arguments map[string]any
}

// StreamChunk is one increment of a streaming response. Exactly one of
// Content or ToolCalls is populated per chunk; Done marks the final chunk.
type StreamChunk struct {
	Content   string
	ToolCalls []ToolCall
	Done      bool
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
	Tools       []Tool
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(o *Options) {
		o.MaxTokens = maxTokens
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithTools(tools []Tool) Option {
	return func(o *Options) {
		o.Tools = tools
	}
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)

	// ChatStream sends a chat history and emits the response incrementally.
	// The callback runs on the provider's read loop; chunks must be consumed
	// promptly. A chunk carrying tool calls ends the turn.
	ChatStream(ctx context.Context, history []Message, onChunk func(StreamChunk) error, options ...Option) error
}
