package aiopenai

import (
	"context"

	"github.com/Abraxas-365/resumeforge/pkg/ai/llm"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIProvider implements llm.LLM on the Chat Completions API. The same
// type serves Azure OpenAI deployments through NewAzureProvider.
type OpenAIProvider struct {
	client openai.Client
	model  string
	name   string
}

// NewOpenAIProvider creates a provider for api.openai.com.
func NewOpenAIProvider(apiKey string, opts ...option.RequestOption) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, errorRegistry.New(ErrMissingAPIKey)
	}
	reqOpts := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &OpenAIProvider{
		client: openai.NewClient(reqOpts...),
		model:  "gpt-4o-mini",
		name:   "openai",
	}, nil
}

// Name identifies the backend in logs.
func (p *OpenAIProvider) Name() string { return p.name }

func (p *OpenAIProvider) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (llm.Response, error) {
	if len(messages) == 0 {
		return llm.Response{}, errorRegistry.New(ErrEmptyMessages)
	}
	options := llm.DefaultOptions(p.model).Apply(opts...)

	params := openai.ChatCompletionNewParams{
		Messages:    toMessages(messages),
		Model:       options.Model,
		Temperature: openai.Float(float64(options.Temperature)),
	}
	if options.TopP != 0 {
		params.TopP = openai.Float(float64(options.TopP))
	}
	if options.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(options.MaxTokens))
	}
	if len(options.Stop) > 0 {
		params.Stop = openai.ChatCompletionNewParamsStopUnion{OfStringArray: options.Stop}
	}

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return llm.Response{}, ParseOpenAIError(err).WithDetail("model", options.Model)
	}
	if len(completion.Choices) == 0 {
		return llm.Response{}, errorRegistry.New(ErrNoChoices).WithDetail("model", options.Model)
	}

	return llm.Response{
		Message: llm.NewAssistantMessage(completion.Choices[0].Message.Content),
		Model:   options.Model,
		Usage: llm.Usage{
			PromptTokens:     int(completion.Usage.PromptTokens),
			CompletionTokens: int(completion.Usage.CompletionTokens),
			TotalTokens:      int(completion.Usage.TotalTokens),
		},
	}, nil
}

func toMessages(messages []llm.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case llm.RoleSystem:
			out = append(out, openai.SystemMessage(m.TextContent()))
		case llm.RoleAssistant:
			out = append(out, openai.AssistantMessage(m.TextContent()))
		default:
			out = append(out, openai.UserMessage(m.TextContent()))
		}
	}
	return out
}
