package ocr

// Options tune a recognition call.
type Options struct {
	Model         string
	LanguageHints []string
	Prompt        string
}

type Option func(*Options)

func WithModel(model string) Option {
	return func(o *Options) { o.Model = model }
}

// WithLanguages sets recognition languages, e.g. "eng" or "eng+spa".
func WithLanguages(langs ...string) Option {
	return func(o *Options) { o.LanguageHints = append(o.LanguageHints, langs...) }
}

// WithPrompt overrides the instruction sent to vision-model recognizers.
func WithPrompt(prompt string) Option {
	return func(o *Options) { o.Prompt = prompt }
}

// ApplyOptions folds opts over the zero Options.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
