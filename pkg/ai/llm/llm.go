// Package llm is the provider-neutral chat interface used to rewrite resumes.
package llm

import "context"

// LLM is implemented by every chat provider.
type LLM interface {
	Chat(ctx context.Context, messages []Message, opts ...Option) (Response, error)
}

// Response is a single assistant reply.
type Response struct {
	Message Message `json:"message"`
	Model   string  `json:"model"`
	Usage   Usage   `json:"usage"`
}

// Text returns the reply text.
func (r Response) Text() string {
	return r.Message.TextContent()
}

// ChatOptions are the knobs shared by all providers.
type ChatOptions struct {
	Model       string
	Temperature float32
	TopP        float32
	MaxTokens   int
	Stop        []string
}

type Option func(*ChatOptions)

// DefaultOptions returns options with the given model preset.
func DefaultOptions(model string) *ChatOptions {
	return &ChatOptions{Model: model, Temperature: 0.4, MaxTokens: 4096}
}

// Apply folds opts into o and returns it.
func (o *ChatOptions) Apply(opts ...Option) *ChatOptions {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func WithModel(model string) Option {
	return func(o *ChatOptions) { o.Model = model }
}

func WithTemperature(t float32) Option {
	return func(o *ChatOptions) { o.Temperature = t }
}

func WithTopP(p float32) Option {
	return func(o *ChatOptions) { o.TopP = p }
}

func WithMaxTokens(n int) Option {
	return func(o *ChatOptions) { o.MaxTokens = n }
}

func WithStop(stop ...string) Option {
	return func(o *ChatOptions) { o.Stop = stop }
}

// SplitSystem separates system messages from the conversation, since most
// provider APIs take the system prompt as a dedicated field.
func SplitSystem(messages []Message) (system string, rest []Message) {
	for _, m := range messages {
		if m.Role == RoleSystem {
			if system != "" {
				system += "\n\n"
			}
			system += m.TextContent()
			continue
		}
		rest = append(rest, m)
	}
	return system, rest
}
