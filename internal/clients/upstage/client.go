// Package upstage talks to the Upstage Solar chat completion API through its
// OpenAI compatible endpoint.
package upstage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

const (
	DefaultBaseURL = "https://api.upstage.ai/v1"
	DefaultModel   = "solar-1-mini-chat"

	defaultTemperature = 0.7
)

var (
	ErrMissingAPIKey = errors.New("upstage api key is not configured")
	ErrEmptyReply    = errors.New("upstage returned an empty reply")
)

type Options struct {
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

type Client struct {
	llm   *openai.LLM
	model string
}

func New(apiKey string, options Options) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	baseURL := strings.TrimRight(strings.TrimSpace(options.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := strings.TrimSpace(options.Model)
	if model == "" {
		model = DefaultModel
	}
	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithBaseURL(baseURL),
		openai.WithModel(model),
		openai.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("create upstage client: %w", err)
	}
	return &Client{llm: llm, model: model}, nil
}

func (client *Client) Model() string {
	return client.model
}

// Complete sends a system and a user message and returns the first choice, trimmed.
func (client *Client) Complete(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(schema.ChatMessageTypeHuman, userPrompt),
	}

	response, err := client.llm.GenerateContent(ctx, messages, llms.WithTemperature(defaultTemperature))
	if err != nil {
		return "", fmt.Errorf("upstage chat completion: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", ErrEmptyReply
	}

	content := strings.TrimSpace(response.Choices[0].Content)
	if content == "" {
		return "", ErrEmptyReply
	}
	return content, nil
}
