// Package openai provides a relevance oracle adapter using the OpenAI
// chat completions API.
package openai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/custodia-labs/docscout-cli/internal/adapters/driven/oracle"
	"github.com/custodia-labs/docscout-cli/internal/core/domain"
	"github.com/custodia-labs/docscout-cli/internal/core/ports/driven"
)

// Ensure Oracle implements the interface.
var _ driven.RelevanceOracle = (*Oracle)(nil)

// Default configuration values.
const (
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 120 * time.Second
)

// Config holds configuration for the OpenAI oracle.
type Config struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// BaseURL overrides the API base URL. Empty uses the public
	// endpoint; set it for Azure OpenAI or compatible gateways.
	BaseURL string

	// Model is the chat model to use (default: gpt-4o-mini).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration
}

// Oracle evaluates document relevance using OpenAI chat completions.
type Oracle struct {
	client *goopenai.Client
	model  string
}

// New creates an OpenAI relevance oracle.
func New(cfg Config) (*Oracle, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Oracle{
		client: goopenai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}, nil
}

// EvaluateBatch submits one batch of documents for relevance scoring.
func (o *Oracle) EvaluateBatch(
	ctx context.Context, query string, docs []driven.BatchDocument,
) ([]domain.RelevanceVerdict, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	resp, err := o.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: o.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: oracle.SystemPrompt},
			{Role: goopenai.ChatMessageRoleUser, Content: oracle.BuildPrompt(query, docs)},
		},
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai: no response choices returned")
	}

	return oracle.ParseVerdicts(resp.Choices[0].Message.Content, docs)
}

// ModelName returns the name of the model being used.
func (o *Oracle) ModelName() string {
	return o.model
}
