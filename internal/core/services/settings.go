package services

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
	"github.com/custodia-labs/jukebox-cli/internal/core/ports/driven"
	"github.com/custodia-labs/jukebox-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider    = "llm.provider"
	keyLLMModel       = "llm.model"
	keyLLMBaseURL     = "llm.base_url"
	keyLLMAPIKey      = "llm.api_key"
	keyLLMAPIVersion  = "llm.api_version"
	keyLLMDeployment  = "llm.deployment"
	keyWebProvider    = "websearch.provider"
	keyWebAPIKey      = "websearch.api_key"
	keyWebCacheTTL    = "websearch.cache_ttl"
	keyWebRedisAddr   = "websearch.redis_addr"
	keyLibraryDataDir = "library.data_dir"
	keyLibraryAudio   = "library.audio_dir"
	keyServerAddr     = "server.addr"
)

// Environment variables that override stored settings.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
const (
	EnvAzureEndpoint   = "AZURE_ENDPOINT"
	EnvAzureAPIKey     = "AZURE_API_KEY"
	EnvAzureDeployment = "DEPLOYMENT_NAME"
	EnvSerpAPIKey      = "SERP_API_KEY"
	EnvLLMAPIKey       = "JUKEBOX_LLM_API_KEY"
)

const defaultOllamaURL = "http://localhost:11434"

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
		getenv:      os.Getenv,
	}
}

// SetEnvLookup replaces the environment lookup used for overrides.
// A nil function disables overrides.
func (s *SettingsService) SetEnvLookup(fn func(string) string) {
	if fn == nil {
		fn = func(string) string { return "" }
	}
	s.getenv = fn
}

// Get retrieves current application settings with environment overrides applied.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := s.stored()
	s.applyEnv(settings)
	return settings, nil
}

// stored reads settings from the config store only.
func (s *SettingsService) stored() *domain.AppSettings {
	defaults := domain.DefaultAppSettings()

	return &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider:   s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:      s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:    s.configStore.GetString(keyLLMBaseURL),
			APIKey:     s.configStore.GetString(keyLLMAPIKey),
			APIVersion: s.configStore.GetString(keyLLMAPIVersion),
			Deployment: s.configStore.GetString(keyLLMDeployment),
		},
		WebSearch: domain.WebSearchSettings{
			Provider:  s.getSearchProvider(defaults.WebSearch.Provider),
			APIKey:    s.configStore.GetString(keyWebAPIKey),
			CacheTTL:  s.getDuration(keyWebCacheTTL, defaults.WebSearch.CacheTTL),
			RedisAddr: s.configStore.GetString(keyWebRedisAddr),
		},
		Library: domain.LibrarySettings{
			DataDir:  s.getString(keyLibraryDataDir, defaults.Library.DataDir),
			AudioDir: s.getString(keyLibraryAudio, defaults.Library.AudioDir),
		},
		Server: domain.ServerSettings{
			Addr: s.getString(keyServerAddr, defaults.Server.Addr),
		},
	}
}

// applyEnv overlays environment variables on settings.
// A complete set of Azure variables selects the Azure provider.
func (s *SettingsService) applyEnv(settings *domain.AppSettings) {
	endpoint := s.getenv(EnvAzureEndpoint)
	azureKey := s.getenv(EnvAzureAPIKey)
	deployment := s.getenv(EnvAzureDeployment)
	if endpoint != "" && azureKey != "" && deployment != "" {
		settings.LLM.Provider = domain.AIProviderAzure
		settings.LLM.BaseURL = endpoint
		settings.LLM.APIKey = azureKey
		settings.LLM.Deployment = deployment
		settings.LLM.Model = deployment
	}
	if settings.LLM.Provider == domain.AIProviderAzure && settings.LLM.APIVersion == "" {
		settings.LLM.APIVersion = domain.DefaultAzureAPIVersion
	}

	if key := s.getenv(EnvSerpAPIKey); key != "" {
		settings.WebSearch.Provider = domain.SearchProviderSerpAPI
		settings.WebSearch.APIKey = key
	}

	if key := s.getenv(EnvLLMAPIKey); key != "" {
		settings.LLM.APIKey = key
	}
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
		skip  bool
	}{
		{keyLLMProvider, settings.LLM.Provider.String(), false},
		{keyLLMModel, settings.LLM.Model, false},
		{keyLLMBaseURL, settings.LLM.BaseURL, false},
		{keyLLMAPIKey, settings.LLM.APIKey, settings.LLM.APIKey == ""},
		{keyLLMAPIVersion, settings.LLM.APIVersion, false},
		{keyLLMDeployment, settings.LLM.Deployment, false},
		{keyWebProvider, settings.WebSearch.Provider.String(), false},
		{keyWebAPIKey, settings.WebSearch.APIKey, settings.WebSearch.APIKey == ""},
		{keyWebCacheTTL, settings.WebSearch.CacheTTL.String(), false},
		{keyWebRedisAddr, settings.WebSearch.RedisAddr, false},
		{keyLibraryDataDir, settings.Library.DataDir, false},
		{keyLibraryAudio, settings.Library.AudioDir, false},
		{keyServerAddr, settings.Server.Addr, false},
	}

	for _, v := range values {
		if v.skip {
			continue
		}
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// SetLLMProvider configures the LLM provider.
// Azure deployments are configured with SetAzureDeployment.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}
	if provider == domain.AIProviderAzure {
		return fmt.Errorf("%w: azure needs an endpoint and deployment", domain.ErrInvalidInput)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings := s.stored()
	settings.LLM.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.LLM.Model = model
	} else if defaultModel, ok := domain.DefaultLLMModels()[provider]; ok {
		settings.LLM.Model = defaultModel
	}

	if provider.IsLocal() {
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = defaultOllamaURL
		}
	} else {
		settings.LLM.BaseURL = ""
	}
	settings.LLM.APIKey = apiKey
	settings.LLM.APIVersion = ""
	settings.LLM.Deployment = ""
	if apiKey == "" {
		if err := s.configStore.Set(keyLLMAPIKey, ""); err != nil {
			return fmt.Errorf("save %s: %w", keyLLMAPIKey, err)
		}
	}

	return s.Save(settings)
}

// SetAzureDeployment configures an Azure OpenAI deployment.
func (s *SettingsService) SetAzureDeployment(endpoint, deployment, apiVersion, apiKey string) error {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if endpoint == "" || deployment == "" {
		return fmt.Errorf("%w: azure endpoint and deployment are required", domain.ErrInvalidInput)
	}
	if apiKey == "" {
		return fmt.Errorf("API key required for %s", domain.AIProviderAzure)
	}
	if apiVersion == "" {
		apiVersion = domain.DefaultAzureAPIVersion
	}

	settings := s.stored()
	settings.LLM = domain.LLMSettings{
		Provider:   domain.AIProviderAzure,
		Model:      deployment,
		BaseURL:    endpoint,
		APIKey:     apiKey,
		APIVersion: apiVersion,
		Deployment: deployment,
	}
	return s.Save(settings)
}

// SetWebSearchProvider configures the web search provider.
func (s *SettingsService) SetWebSearchProvider(provider domain.SearchProvider, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid web search provider: %s", provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings := s.stored()
	settings.WebSearch.Provider = provider
	settings.WebSearch.APIKey = apiKey
	if !provider.RequiresAPIKey() {
		// Clear a stale key from a previous provider.
		if err := s.configStore.Set(keyWebAPIKey, ""); err != nil {
			return fmt.Errorf("save %s: %w", keyWebAPIKey, err)
		}
	}
	return s.Save(settings)
}

// Validate checks that the agent can run with the current settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	var errs []error
	if !settings.LLM.IsConfigured() {
		errs = append(errs, fmt.Errorf("%w: configure one with 'jukebox settings llm'", domain.ErrLLMUnavailable))
	}
	if !settings.WebSearch.IsConfigured() {
		errs = append(errs, fmt.Errorf("%w: %s needs an API key", domain.ErrWebSearchUnavailable,
			settings.WebSearch.Provider.Description()))
	}
	return errors.Join(errs...)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// ValidateWebSearchConfig validates the current web search configuration with a probe query.
func (s *SettingsService) ValidateWebSearchConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateWebSearch(&settings.WebSearch)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d < 0 {
		return defaultVal
	}
	return d
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func (s *SettingsService) getSearchProvider(defaultVal domain.SearchProvider) domain.SearchProvider {
	val := s.configStore.GetString(keyWebProvider)
	if val == "" {
		return defaultVal
	}
	provider := domain.SearchProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
