// Package azure provides an LLM service adapter for Azure OpenAI deployments.
package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/custodia-labs/jukebox-cli/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
	"github.com/custodia-labs/jukebox-cli/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// DefaultTimeout is the request timeout when none is configured.
const DefaultTimeout = 120 * time.Second

// Config holds configuration for an Azure OpenAI deployment.
type Config struct {
	// Endpoint is the resource endpoint, e.g. https://<name>.openai.azure.com (required).
	Endpoint string

	// Deployment is the model deployment name (required).
	Deployment string

	// APIKey is the resource key, sent in the api-key header (required).
	APIKey string

	// APIVersion is the REST API version (default: domain.DefaultAzureAPIVersion).
	APIVersion string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration
}

// LLMService provides LLM operations using an Azure OpenAI deployment.
type LLMService struct {
	client     *http.Client
	endpoint   string
	deployment string
	apiKey     string
	apiVersion string
}

// NewLLMService creates a new Azure OpenAI LLM service.
func NewLLMService(cfg Config) (*LLMService, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("azure: endpoint is required")
	}
	if cfg.Deployment == "" {
		return nil, fmt.Errorf("azure: deployment is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("azure: API key is required")
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = domain.DefaultAzureAPIVersion
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &LLMService{
		client:     &http.Client{Timeout: cfg.Timeout},
		endpoint:   strings.TrimRight(cfg.Endpoint, "/"),
		deployment: cfg.Deployment,
		apiKey:     cfg.APIKey,
		apiVersion: cfg.APIVersion,
	}, nil
}

// Generate produces text completion from a prompt.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	messages := []driven.ChatMessage{{Role: "user", Content: prompt}}
	chatOpts := driven.ChatOptions{MaxTokens: opts.MaxTokens, Temperature: opts.Temperature}
	return s.chatCompletion(ctx, messages, chatOpts, opts.StopWords)
}

// Chat conducts a multi-turn conversation.
func (s *LLMService) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	return s.chatCompletion(ctx, messages, opts, nil)
}

func (s *LLMService) chatCompletion(
	ctx context.Context,
	messages []driven.ChatMessage,
	opts driven.ChatOptions,
	stopWords []string,
) (string, error) {
	// The deployment selects the model, so the body carries none.
	jsonBody, err := json.Marshal(openai.NewChatRequest("", messages, opts, stopWords))
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.completionsURL(), bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	return openai.ParseChatResponse("azure", resp.StatusCode, body)
}

func (s *LLMService) completionsURL() string {
	return fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		s.endpoint, url.PathEscape(s.deployment), url.QueryEscape(s.apiVersion))
}

// ModelName returns the deployment name.
func (s *LLMService) ModelName() string {
	return s.deployment
}

// Ping validates the endpoint and key by listing the resource's models.
func (s *LLMService) Ping(ctx context.Context) error {
	u := fmt.Sprintf("%s/openai/models?api-version=%s", s.endpoint, url.QueryEscape(s.apiVersion))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("azure: failed to create ping request: %w", err)
	}
	req.Header.Set("api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("azure: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("azure: API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Close releases resources.
func (s *LLMService) Close() error {
	return nil
}
