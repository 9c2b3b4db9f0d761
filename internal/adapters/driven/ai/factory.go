// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	memorycache "github.com/custodia-labs/jukebox-cli/internal/adapters/driven/cache/memory"
	rediscache "github.com/custodia-labs/jukebox-cli/internal/adapters/driven/cache/redis"
	anthropicllm "github.com/custodia-labs/jukebox-cli/internal/adapters/driven/llm/anthropic"
	azurellm "github.com/custodia-labs/jukebox-cli/internal/adapters/driven/llm/azure"
	geminillm "github.com/custodia-labs/jukebox-cli/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/custodia-labs/jukebox-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/jukebox-cli/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/jukebox-cli/internal/adapters/driven/websearch/brave"
	"github.com/custodia-labs/jukebox-cli/internal/adapters/driven/websearch/cached"
	"github.com/custodia-labs/jukebox-cli/internal/adapters/driven/websearch/duckduckgo"
	"github.com/custodia-labs/jukebox-cli/internal/adapters/driven/websearch/serpapi"
	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
	"github.com/custodia-labs/jukebox-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// probeQuery is sent when validating a web search configuration.
const probeQuery = "Bohemian Rhapsody song by Queen"

// InitResult contains the result of AI service initialisation.
type InitResult struct {
	LLMService driven.LLMService
	WebSearch  driven.WebSearch   // Cache-wrapped when a TTL is set.
	Cache      driven.SearchCache // Nil when caching is disabled.
	Warnings   []string           // Non-fatal issues that disabled a service.
}

// Close releases all resources held by InitResult.
func (r *InitResult) Close() {
	if r.LLMService != nil {
		_ = r.LLMService.Close()
	}
	if r.Cache != nil {
		_ = r.Cache.Close()
	}
}

// Init builds every service the agent needs from settings. No provider is
// contacted; connectivity is checked by the validator. An unconfigured LLM
// or web search is left nil with a warning. A misconfigured LLM is an error.
func Init(ctx context.Context, settings *domain.AppSettings) (*InitResult, error) {
	result := &InitResult{}

	llm, err := CreateLLMService(ctx, &settings.LLM)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'jukebox settings llm' to fix",
			domain.ErrLLMUnavailable, err)
	}
	if llm == nil {
		result.Warnings = append(result.Warnings, "LLM not configured. Run 'jukebox settings llm'")
	}
	result.LLMService = llm

	web, cache, warnings, err := CreateWebSearch(ctx, &settings.WebSearch)
	result.Warnings = append(result.Warnings, warnings...)
	switch {
	case err != nil:
		result.Warnings = append(result.Warnings, fmt.Sprintf("web search disabled: %v", err))
	case web == nil:
		result.Warnings = append(result.Warnings, "web search not configured. Run 'jukebox settings search'")
	}
	result.WebSearch = web
	result.Cache = cache

	return result, nil
}

// ValidateLLMConfig validates an LLM configuration by creating a service and pinging it.
func ValidateLLMConfig(settings *domain.LLMSettings) error {
	ctx := context.Background()
	svc, err := CreateLLMService(ctx, settings)
	if err != nil || svc == nil {
		return err
	}
	defer svc.Close()

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return svc.Ping(pingCtx)
}

// CreateLLMService creates the appropriate LLM service based on settings.
// Returns nil if the provider is not configured.
func CreateLLMService(ctx context.Context, settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	case domain.AIProviderOpenAI:
		return openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderAzure:
		return azurellm.NewLLMService(azurellm.Config{
			Endpoint:   settings.BaseURL,
			Deployment: settings.Deployment,
			APIKey:     settings.APIKey,
			APIVersion: settings.APIVersion,
		})

	case domain.AIProviderAnthropic:
		return anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderGemini:
		return geminillm.NewLLMService(ctx, geminillm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
}

// CreateWebSearchProvider creates the bare provider for settings.
// Returns nil if the provider is not configured.
func CreateWebSearchProvider(settings *domain.WebSearchSettings) (driven.WebSearch, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.SearchProviderSerpAPI:
		return serpapi.New(serpapi.Config{APIKey: settings.APIKey})
	case domain.SearchProviderBrave:
		return brave.New(brave.Config{APIKey: settings.APIKey})
	case domain.SearchProviderDuckDuckGo:
		return duckduckgo.New(duckduckgo.Config{}), nil
	default:
		return nil, fmt.Errorf("unsupported search provider: %s", settings.Provider)
	}
}

// CreateSearchCache picks Redis when an address is set and the in-process
// cache otherwise. Returns nil when the TTL disables caching. An unreachable
// Redis falls back to memory and reports a warning.
func CreateSearchCache(ctx context.Context, settings *domain.WebSearchSettings) (driven.SearchCache, []string) {
	if settings == nil || settings.CacheTTL <= 0 {
		return nil, nil
	}
	if settings.RedisAddr == "" {
		return memorycache.New(), nil
	}

	cache, err := rediscache.New(ctx, rediscache.Config{Addr: settings.RedisAddr})
	if err != nil {
		return memorycache.New(), []string{fmt.Sprintf("redis cache unavailable, using memory: %v", err)}
	}
	return cache, nil
}

// CreateWebSearch builds the provider wrapped in its cache.
func CreateWebSearch(ctx context.Context, settings *domain.WebSearchSettings) (driven.WebSearch, driven.SearchCache, []string, error) {
	provider, err := CreateWebSearchProvider(settings)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %w", domain.ErrWebSearchUnavailable, err)
	}
	if provider == nil {
		return nil, nil, nil, nil
	}

	cache, warnings := CreateSearchCache(ctx, settings)
	if cache == nil {
		return provider, nil, warnings, nil
	}
	return cached.New(provider, cache, settings.CacheTTL), cache, warnings, nil
}

// ValidateWebSearchConfig sends one probe query through the provider.
func ValidateWebSearchConfig(settings *domain.WebSearchSettings) error {
	provider, err := CreateWebSearchProvider(settings)
	if err != nil || provider == nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if _, err := provider.Search(ctx, probeQuery); err != nil {
		if errors.Is(err, domain.ErrRateLimited) {
			// The key works; the quota is just spent right now.
			return nil
		}
		return err
	}
	return nil
}
