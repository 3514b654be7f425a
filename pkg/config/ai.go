package config

import (
	"fmt"
	"strings"
	"time"
)

// Supported LLM providers.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAzure     = "azure"
	ProviderAnthropic = "anthropic"
	ProviderBedrock   = "bedrock"
)

// Supported OCR engines.
const (
	OCRTesseract = "tesseract"
	OCRGemini    = "gemini"
)

var defaultModels = map[string][]string{
	ProviderGemini:    {"gemini-2.5-flash", "gemini-2.0-flash", "gemini-1.5-flash"},
	ProviderOpenAI:    {"gpt-4o-mini", "gpt-4o"},
	ProviderAzure:     {"gpt-4o-mini"},
	ProviderAnthropic: {"claude-3-5-haiku-latest", "claude-3-5-sonnet-latest"},
	ProviderBedrock:   {"anthropic.claude-3-haiku-20240307-v1:0"},
}

// AIConfig selects the rewrite model and the OCR engine.
type AIConfig struct {
	Provider    string
	Models      []string
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int

	GeminiAPIKey    string
	OpenAIAPIKey    string
	AnthropicAPIKey string

	AzureEndpoint   string
	AzureAPIKey     string
	AzureADToken    string
	AzureAPIVersion string

	BedrockRegion string

	OCRProvider   string
	TesseractLang string
	OCRModel      string
}

func loadAIConfig() AIConfig {
	provider := strings.ToLower(getEnv("LLM_PROVIDER", ProviderGemini))
	return AIConfig{
		Provider:        provider,
		Models:          getEnvStringSlice("LLM_MODELS", defaultModels[provider]),
		Timeout:         getEnvDuration("LLM_TIMEOUT", 60*time.Second),
		Temperature:     getEnvFloat("LLM_TEMPERATURE", 0.4),
		MaxTokens:       getEnvInt("LLM_MAX_TOKENS", 4096),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		AzureEndpoint:   getEnv("AZURE_OPENAI_ENDPOINT", ""),
		AzureAPIKey:     getEnv("AZURE_OPENAI_API_KEY", ""),
		AzureADToken:    getEnv("AZURE_OPENAI_AD_TOKEN", ""),
		AzureAPIVersion: getEnv("AZURE_OPENAI_API_VERSION", "2024-06-01"),
		BedrockRegion:   getEnv("BEDROCK_REGION", getEnv("AWS_REGION", "us-east-1")),
		OCRProvider:     strings.ToLower(getEnv("OCR_PROVIDER", OCRTesseract)),
		TesseractLang:   getEnv("TESSERACT_LANG", "eng"),
		OCRModel:        getEnv("OCR_MODEL", "gemini-2.5-flash"),
	}
}

// APIKeyConfigured reports whether the selected provider has credentials.
// Bedrock relies on the AWS credential chain and is always considered set.
func (a AIConfig) APIKeyConfigured() bool {
	switch a.Provider {
	case ProviderGemini:
		return a.GeminiAPIKey != ""
	case ProviderOpenAI:
		return a.OpenAIAPIKey != ""
	case ProviderAzure:
		return a.AzureEndpoint != "" && (a.AzureAPIKey != "" || a.AzureADToken != "")
	case ProviderAnthropic:
		return a.AnthropicAPIKey != ""
	case ProviderBedrock:
		return true
	}
	return false
}

// Validate checks provider selection and credentials.
func (a AIConfig) Validate() error {
	if _, ok := defaultModels[a.Provider]; !ok {
		return fmt.Errorf("unknown LLM_PROVIDER %q", a.Provider)
	}
	if !a.APIKeyConfigured() {
		return fmt.Errorf("API key for LLM provider %q not found in environment variables", a.Provider)
	}
	if len(a.Models) == 0 {
		return fmt.Errorf("LLM_MODELS must name at least one model")
	}
	switch a.OCRProvider {
	case OCRTesseract:
	case OCRGemini:
		if a.GeminiAPIKey == "" {
			return fmt.Errorf("OCR_PROVIDER=gemini requires GEMINI_API_KEY")
		}
	default:
		return fmt.Errorf("unknown OCR_PROVIDER %q", a.OCRProvider)
	}
	return nil
}
