// Package rewrite improves resume text, first through a language model and
// then through deterministic fallbacks. Every path guarantees the returned
// text scores at least as well as the input.
package rewrite

import (
	"context"
	"time"

	"github.com/Abraxas-365/resumeforge/pkg/ai/llm"
	"github.com/Abraxas-365/resumeforge/pkg/asyncx"
	"github.com/Abraxas-365/resumeforge/pkg/logx"
	"github.com/Abraxas-365/resumeforge/pkg/resume"
	"github.com/Abraxas-365/resumeforge/pkg/resume/ats"
)

const (
	defaultTimeout     = 60 * time.Second
	defaultTemperature = 0.4
	defaultMaxTokens   = 4096
)

// AIEnhancer asks a chat model for a rewrite, trying each model in turn.
type AIEnhancer struct {
	client      llm.LLM
	models      []string
	timeout     time.Duration
	temperature float32
	maxTokens   int
}

var _ resume.Enhancer = (*AIEnhancer)(nil)

type Option func(*AIEnhancer)

// WithTimeout bounds each model call.
func WithTimeout(d time.Duration) Option {
	return func(e *AIEnhancer) {
		if d > 0 {
			e.timeout = d
		}
	}
}

func WithTemperature(t float32) Option {
	return func(e *AIEnhancer) { e.temperature = t }
}

func WithMaxTokens(n int) Option {
	return func(e *AIEnhancer) {
		if n > 0 {
			e.maxTokens = n
		}
	}
}

// NewAIEnhancer builds an enhancer over client. A nil client or an empty model
// list sends every request straight to the fallbacks.
func NewAIEnhancer(client llm.LLM, models []string, opts ...Option) *AIEnhancer {
	e := &AIEnhancer{
		client:      client,
		models:      models,
		timeout:     defaultTimeout,
		temperature: defaultTemperature,
		maxTokens:   defaultMaxTokens,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enhance returns the first model reply that does not lower the ATS score,
// or the SmartFallback result when none qualifies. It only fails when ctx is
// done.
func (e *AIEnhancer) Enhance(ctx context.Context, text string) (resume.Outcome, error) {
	original := ats.Score(text)
	log := logx.WithContext(ctx).WithField("original_score", original)

	if e.client != nil {
		messages := []llm.Message{
			llm.NewSystemMessage(systemPrompt),
			llm.NewUserMessage(userPrompt(text)),
		}

		for _, model := range e.models {
			if err := ctx.Err(); err != nil {
				return resume.Outcome{}, err
			}

			reply, err := asyncx.WithTimeout(ctx, e.timeout, func(ctx context.Context) (string, error) {
				resp, err := e.client.Chat(ctx, messages,
					llm.WithModel(model),
					llm.WithTemperature(e.temperature),
					llm.WithMaxTokens(e.maxTokens),
				)
				if err != nil {
					return "", err
				}
				return resp.Text(), nil
			})
			if err != nil {
				log.WithField("model", model).WithError(err).Warn("Model failed, trying next")
				continue
			}

			reply = CleanResponse(reply)
			if reply == "" {
				log.WithField("model", model).Warn("Model returned an empty reply")
				continue
			}

			score := ats.Score(reply)
			if score >= original {
				log.WithFields(logx.Fields{"model": model, "enhanced_score": score}).Info("AI enhancement accepted")
				return resume.Outcome{Text: reply, Source: resume.SourceAI, Model: model}, nil
			}
			log.WithFields(logx.Fields{"model": model, "enhanced_score": score}).
				Warn("AI enhancement lowered the score, discarding")
		}
	}

	out := SmartFallback(text)
	log.WithField("source", out.Source).Info("Using fallback enhancement")
	return out, nil
}
