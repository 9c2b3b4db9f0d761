package driving

import "github.com/custodia-labs/jukebox-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, including environment overrides.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetLLMProvider configures the LLM provider.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// SetAzureDeployment configures an Azure OpenAI deployment.
	SetAzureDeployment(endpoint, deployment, apiVersion, apiKey string) error

	// SetWebSearchProvider configures the web search provider.
	SetWebSearchProvider(provider domain.SearchProvider, apiKey string) error

	// Validate checks that the settings are complete enough to run the agent.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
	ValidateLLMConfig() error

	// ValidateWebSearchConfig validates the current web search configuration with a probe query.
	ValidateWebSearchConfig() error
}
