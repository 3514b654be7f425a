package aigemini

import (
	"context"
	"strings"

	"github.com/Abraxas-365/resumeforge/pkg/ai/llm"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

// GeminiProvider implements llm.LLM and ocr.TextRecognizer on the Gemini API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// ProviderOption configures the provider.
type ProviderOption func(*GeminiProvider)

// WithDefaultModel sets the model used when a call does not name one.
func WithDefaultModel(model string) ProviderOption {
	return func(p *GeminiProvider) { p.model = model }
}

// NewGeminiProvider creates a client on the Gemini API backend.
func NewGeminiProvider(ctx context.Context, apiKey string, opts ...ProviderOption) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, errorRegistry.New(ErrMissingAPIKey)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errorRegistry.NewWithCause(ErrMissingAPIKey, err)
	}

	p := &GeminiProvider{client: client, model: defaultModel}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Chat sends the conversation and returns the first candidate.
func (p *GeminiProvider) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (llm.Response, error) {
	if len(messages) == 0 {
		return llm.Response{}, errorRegistry.New(ErrEmptyMessages)
	}
	options := llm.DefaultOptions(p.model).Apply(opts...)

	system, rest := llm.SplitSystem(messages)
	config := buildConfig(options, system)

	result, err := p.client.Models.GenerateContent(ctx, options.Model, toContents(rest), config)
	if err != nil {
		return llm.Response{}, ParseGeminiError(err).WithDetail("model", options.Model)
	}
	return fromResponse(result, options.Model)
}

func buildConfig(o *llm.ChatOptions, system string) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if system != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{genai.NewPartFromText(system)}}
	}
	cfg.Temperature = genai.Ptr(o.Temperature)
	if o.TopP != 0 {
		cfg.TopP = genai.Ptr(o.TopP)
	}
	if o.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(o.MaxTokens)
	}
	if len(o.Stop) > 0 {
		cfg.StopSequences = o.Stop
	}
	return cfg
}

func toContents(messages []llm.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		role := "user"
		if m.Role == llm.RoleAssistant {
			role = "model"
		}
		contents = append(contents, &genai.Content{Role: role, Parts: toParts(m)})
	}
	return contents
}

func toParts(m llm.Message) []*genai.Part {
	if !m.IsMultimodal() {
		return []*genai.Part{genai.NewPartFromText(m.Content)}
	}
	parts := make([]*genai.Part, 0, len(m.MultiContent))
	for _, c := range m.MultiContent {
		switch c.Type {
		case llm.ContentPartTypeText:
			parts = append(parts, genai.NewPartFromText(c.Text))
		case llm.ContentPartTypeImage:
			parts = append(parts, genai.NewPartFromBytes(c.Data, c.MimeType))
		}
	}
	return parts
}

func fromResponse(result *genai.GenerateContentResponse, model string) (llm.Response, error) {
	if result == nil || len(result.Candidates) == 0 {
		return llm.Response{}, errorRegistry.New(ErrAPIResponse).WithDetail("reason", "no candidates")
	}

	candidate := result.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return llm.Response{}, errorRegistry.New(ErrSafetyBlocked).WithDetail("model", model)
	}

	var text strings.Builder
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			text.WriteString(part.Text)
		}
	}

	resp := llm.Response{
		Message: llm.NewAssistantMessage(text.String()),
		Model:   model,
	}
	if u := result.UsageMetadata; u != nil {
		resp.Usage = llm.Usage{
			PromptTokens:     int(u.PromptTokenCount),
			CompletionTokens: int(u.CandidatesTokenCount),
			TotalTokens:      int(u.TotalTokenCount),
		}
	}
	return resp, nil
}
