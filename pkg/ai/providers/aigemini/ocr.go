package aigemini

import (
	"context"
	"strings"

	"github.com/Abraxas-365/resumeforge/pkg/ai/llm"
	"github.com/Abraxas-365/resumeforge/pkg/ai/ocr"
)

const transcribePrompt = "Transcribe all text in this resume image exactly as written. " +
	"Keep the original line breaks and reading order. Output plain text only, with no commentary."

// RecognizeText transcribes an image with a vision model.
func (p *GeminiProvider) RecognizeText(ctx context.Context, input ocr.Input, opts ...ocr.Option) (*ocr.Result, error) {
	o := ocr.ApplyOptions(opts...)

	data, err := input.Bytes()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ocr.NewError(ocr.ErrEmptyInput, nil)
	}

	prompt := transcribePrompt
	if o.Prompt != "" {
		prompt = o.Prompt
	}
	mime := input.MimeType
	if mime == "" {
		mime = "image/png"
	}

	chatOpts := []llm.Option{llm.WithTemperature(0)}
	if o.Model != "" {
		chatOpts = append(chatOpts, llm.WithModel(o.Model))
	}

	resp, err := p.Chat(ctx, []llm.Message{
		llm.NewMultimodalUserMessage(llm.TextPart(prompt), llm.ImageDataPart(data, mime)),
	}, chatOpts...)
	if err != nil {
		return nil, ocr.NewError(ocr.ErrRecognition, err)
	}

	return &ocr.Result{
		Text:     strings.TrimSpace(resp.Text()),
		Provider: "gemini",
		Model:    resp.Model,
	}, nil
}
