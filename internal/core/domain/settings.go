package domain

import "time"

const unknownDescription = "Unknown"

// AIProvider identifies an LLM service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAzure is an Azure OpenAI deployment.
	AIProviderAzure AIProvider = "azure"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderGemini is Google Gemini API.
	AIProviderGemini AIProvider = "gemini"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAzure, AIProviderAnthropic, AIProviderGemini:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p.IsValid() && !p.IsLocal()
}

// RequiresBaseURL returns true if this provider has no usable default endpoint.
func (p AIProvider) RequiresBaseURL() bool {
	return p == AIProviderAzure
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAzure:
		return "Azure OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	case AIProviderGemini:
		return "Google Gemini (cloud)"
	default:
		return unknownDescription
	}
}

// SearchProvider identifies a web search backend.
type SearchProvider string

// Available web search providers.
const (
	// SearchProviderSerpAPI is the SerpAPI Google results API.
	SearchProviderSerpAPI SearchProvider = "serpapi"

	// SearchProviderBrave is the Brave Search API.
	SearchProviderBrave SearchProvider = "brave"

	// SearchProviderDuckDuckGo scrapes DuckDuckGo lite and needs no key.
	SearchProviderDuckDuckGo SearchProvider = "duckduckgo"
)

// IsValid returns true if the search provider is recognised.
func (p SearchProvider) IsValid() bool {
	switch p {
	case SearchProviderSerpAPI, SearchProviderBrave, SearchProviderDuckDuckGo:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p SearchProvider) RequiresAPIKey() bool {
	return p == SearchProviderSerpAPI || p == SearchProviderBrave
}

// String returns the string representation.
func (p SearchProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p SearchProvider) Description() string {
	switch p {
	case SearchProviderSerpAPI:
		return "SerpAPI (Google results)"
	case SearchProviderBrave:
		return "Brave Search"
	case SearchProviderDuckDuckGo:
		return "DuckDuckGo (no API key)"
	default:
		return unknownDescription
	}
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (Ollama host, Azure resource endpoint).
	BaseURL string

	// APIKey is the API key for cloud providers.
	APIKey string

	// APIVersion is the Azure OpenAI API version.
	APIVersion string

	// Deployment is the Azure OpenAI deployment name.
	Deployment string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	if l.Provider.RequiresBaseURL() && (l.BaseURL == "" || l.Deployment == "") {
		return false
	}
	return true
}

// WebSearchSettings holds web search provider configuration.
type WebSearchSettings struct {
	// Provider is the search backend.
	Provider SearchProvider

	// APIKey is the provider key (SerpAPI, Brave).
	APIKey string

	// CacheTTL is how long search results are reused. Zero disables caching.
	CacheTTL time.Duration

	// RedisAddr selects a shared Redis cache instead of the in-process one.
	RedisAddr string
}

// IsConfigured returns true if the search provider is set up.
func (w WebSearchSettings) IsConfigured() bool {
	if !w.Provider.IsValid() {
		return false
	}
	return !w.Provider.RequiresAPIKey() || w.APIKey != ""
}

// LibrarySettings holds music library locations.
type LibrarySettings struct {
	// DataDir holds library.db. Empty means ~/.jukebox/data.
	DataDir string

	// AudioDir is the base for relative track file paths.
	AudioDir string
}

// ServerSettings holds REST API configuration.
type ServerSettings struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
}

// AppSettings holds all application settings.
type AppSettings struct {
	// LLM holds LLM provider settings.
	LLM LLMSettings

	// WebSearch holds web search provider settings.
	WebSearch WebSearchSettings

	// Library holds music library settings.
	Library LibrarySettings

	// Server holds REST API settings.
	Server ServerSettings
}

// DefaultAzureAPIVersion is the Azure OpenAI API version used when none is set.
const DefaultAzureAPIVersion = "2024-02-01"

// DefaultAppSettings returns settings with sensible defaults.
// The LLM is left unconfigured; web search defaults to DuckDuckGo,
// which needs no key.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		LLM: LLMSettings{},
		WebSearch: WebSearchSettings{
			Provider: SearchProviderDuckDuckGo,
			CacheTTL: 10 * time.Minute,
		},
		Library: LibrarySettings{},
		Server: ServerSettings{
			Addr: ":8080",
		},
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAzure,
		AIProviderAnthropic,
		AIProviderGemini,
	}
}

// AllSearchProviders returns the supported web search providers.
func AllSearchProviders() []SearchProvider {
	return []SearchProvider{
		SearchProviderSerpAPI,
		SearchProviderBrave,
		SearchProviderDuckDuckGo,
	}
}

// DefaultLLMModels returns default models for each LLM provider.
// Azure uses the deployment name instead of a model.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAzure:     "",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
		AIProviderGemini:    "gemini-2.0-flash",
	}
}
