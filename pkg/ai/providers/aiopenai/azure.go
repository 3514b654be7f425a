package aiopenai

import (
	"context"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/azure"
	"github.com/openai/openai-go/v3/option"
)

// AzureConfig addresses an Azure OpenAI resource. Either APIKey or
// ADToken must be set; the token wins when both are.
type AzureConfig struct {
	Endpoint   string
	APIVersion string
	APIKey     string
	ADToken    string
	Deployment string
}

// NewAzureProvider creates a provider bound to an Azure OpenAI endpoint.
// Model names passed to Chat are deployment names.
func NewAzureProvider(cfg AzureConfig) (*OpenAIProvider, error) {
	if cfg.Endpoint == "" {
		return nil, errorRegistry.New(ErrMissingEndpoint)
	}
	if cfg.APIKey == "" && cfg.ADToken == "" {
		return nil, errorRegistry.New(ErrMissingAPIKey)
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2024-06-01"
	}

	opts := []option.RequestOption{azure.WithEndpoint(cfg.Endpoint, cfg.APIVersion)}
	if cfg.ADToken != "" {
		opts = append(opts, azure.WithTokenCredential(StaticToken(cfg.ADToken)))
	} else {
		opts = append(opts, azure.WithAPIKey(cfg.APIKey))
	}

	return &OpenAIProvider{
		client: openai.NewClient(opts...),
		model:  cfg.Deployment,
		name:   "azure",
	}, nil
}

// StaticToken is an azcore.TokenCredential for a pre-issued Entra ID token.
type StaticToken string

var _ azcore.TokenCredential = StaticToken("")

func (t StaticToken) GetToken(ctx context.Context, _ policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{Token: string(t), ExpiresOn: time.Now().Add(time.Hour)}, nil
}
