package driven

import "github.com/custodia-labs/jukebox-cli/internal/core/domain"

// AIConfigValidator validates provider configurations.
// Implementations verify that configurations are valid by testing connectivity
// to the underlying services.
type AIConfigValidator interface {
	// ValidateLLM validates an LLM configuration by pinging the provider.
	// Returns nil if configuration is valid or not configured.
	ValidateLLM(config *domain.LLMSettings) error

	// ValidateWebSearch validates a web search configuration with a probe query.
	// Returns nil if configuration is valid or not configured.
	ValidateWebSearch(config *domain.WebSearchSettings) error
}
