package aibedrock

import (
	"context"
	"strings"

	"github.com/Abraxas-365/resumeforge/pkg/ai/llm"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

// ConverseAPI is the part of *bedrockruntime.Client used here.
type ConverseAPI interface {
	Converse(ctx context.Context, in *bedrockruntime.ConverseInput, opts ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// BedrockProvider implements llm.LLM on the Bedrock Converse API.
type BedrockProvider struct {
	client ConverseAPI
	model  string
}

type ProviderOption func(*BedrockProvider)

func WithDefaultModel(model string) ProviderOption {
	return func(p *BedrockProvider) { p.model = model }
}

// WithClient swaps the Converse client, mainly for tests.
func WithClient(c ConverseAPI) ProviderOption {
	return func(p *BedrockProvider) { p.client = c }
}

func NewBedrockProvider(cfg aws.Config, opts ...ProviderOption) *BedrockProvider {
	p := &BedrockProvider{
		client: bedrockruntime.NewFromConfig(cfg),
		model:  "anthropic.claude-3-haiku-20240307-v1:0",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *BedrockProvider) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (llm.Response, error) {
	if len(messages) == 0 {
		return llm.Response{}, errorRegistry.New(ErrEmptyMessages)
	}
	options := llm.DefaultOptions(p.model).Apply(opts...)

	system, rest := llm.SplitSystem(messages)
	input := &bedrockruntime.ConverseInput{
		ModelId:         aws.String(options.Model),
		Messages:        toMessages(rest),
		InferenceConfig: inferenceConfig(options),
	}
	if system != "" {
		input.System = []types.SystemContentBlock{&types.SystemContentBlockMemberText{Value: system}}
	}

	output, err := p.client.Converse(ctx, input)
	if err != nil {
		return llm.Response{}, ParseBedrockError(err).WithDetail("model", options.Model)
	}

	msg, ok := output.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return llm.Response{}, errorRegistry.New(ErrAPIResponse).WithDetail("model", options.Model)
	}

	var text strings.Builder
	for _, block := range msg.Value.Content {
		if t, ok := block.(*types.ContentBlockMemberText); ok {
			text.WriteString(t.Value)
		}
	}

	resp := llm.Response{Message: llm.NewAssistantMessage(text.String()), Model: options.Model}
	if u := output.Usage; u != nil {
		resp.Usage = llm.Usage{
			PromptTokens:     int(aws.ToInt32(u.InputTokens)),
			CompletionTokens: int(aws.ToInt32(u.OutputTokens)),
			TotalTokens:      int(aws.ToInt32(u.TotalTokens)),
		}
	}
	return resp, nil
}

func toMessages(messages []llm.Message) []types.Message {
	out := make([]types.Message, 0, len(messages))
	for _, m := range messages {
		role := types.ConversationRoleUser
		if m.Role == llm.RoleAssistant {
			role = types.ConversationRoleAssistant
		}
		out = append(out, types.Message{
			Role:    role,
			Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: m.TextContent()}},
		})
	}
	return out
}

func inferenceConfig(o *llm.ChatOptions) *types.InferenceConfiguration {
	cfg := &types.InferenceConfiguration{}
	if o.MaxTokens > 0 {
		cfg.MaxTokens = aws.Int32(int32(o.MaxTokens))
	}
	cfg.Temperature = aws.Float32(o.Temperature)
	if o.TopP != 0 {
		cfg.TopP = aws.Float32(o.TopP)
	}
	if len(o.Stop) > 0 {
		cfg.StopSequences = o.Stop
	}
	return cfg
}
