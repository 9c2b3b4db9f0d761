package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
)

var (
	settingsProvider     string
	settingsModel        string
	settingsAPIKey       string
	settingsSkipValidate bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the LLM provider, the web search provider and
other options. Settings are stored in ~/.jukebox/config.toml.

Environment variables override stored values:
  AZURE_ENDPOINT, AZURE_API_KEY, DEPLOYMENT_NAME  select Azure OpenAI
  SERP_API_KEY                                    selects SerpAPI
  JUKEBOX_LLM_API_KEY                             overrides the LLM key`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure LLM provider",
	Long: `Configure the LLM that classifies requests, extracts song titles and
answers trivia. Runs interactively unless --provider is given.`,
	RunE: runSettingsLLM,
}

var settingsSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Configure web search provider",
	Long: `Configure the web search used for trivia answers and for identifying
songs that are not in the library. Runs interactively unless --provider is given.`,
	RunE: runSettingsSearch,
}

func init() {
	for _, c := range []*cobra.Command{settingsLLMCmd, settingsSearchCmd} {
		c.Flags().StringVar(&settingsProvider, "provider", "", "provider name")
		c.Flags().StringVar(&settingsAPIKey, "api-key", "", "API key (prompted when required and not set)")
		c.Flags().BoolVar(&settingsSkipValidate, "skip-validate", false, "save without contacting the provider")
	}
	settingsLLMCmd.Flags().StringVar(&settingsModel, "model", "", "model name (defaults per provider)")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsSearchCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[LLM]")
	if settings.LLM.Provider == "" {
		cmd.Println("  Provider: (not set)")
	} else {
		cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	}
	if settings.LLM.Provider == domain.AIProviderAzure {
		cmd.Printf("  Endpoint: %s\n", settings.LLM.BaseURL)
		cmd.Printf("  Deployment: %s\n", settings.LLM.Deployment)
		cmd.Printf("  API Version: %s\n", settings.LLM.APIVersion)
	} else {
		cmd.Printf("  Model: %s\n", settings.LLM.Model)
		if settings.LLM.BaseURL != "" {
			cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
		}
	}
	if settings.LLM.Provider.RequiresAPIKey() {
		cmd.Printf("  API Key: %s\n", displayKey(settings.LLM.APIKey))
	}
	cmd.Printf("  Status: %s\n", configuredStatus(settings.LLM.IsConfigured()))
	cmd.Println()

	cmd.Println("[Web Search]")
	cmd.Printf("  Provider: %s\n", settings.WebSearch.Provider.Description())
	if settings.WebSearch.Provider.RequiresAPIKey() {
		cmd.Printf("  API Key: %s\n", displayKey(settings.WebSearch.APIKey))
	}
	if settings.WebSearch.CacheTTL > 0 {
		cmd.Printf("  Cache TTL: %s\n", settings.WebSearch.CacheTTL)
	} else {
		cmd.Println("  Cache: disabled")
	}
	if settings.WebSearch.RedisAddr != "" {
		cmd.Printf("  Redis: %s\n", settings.WebSearch.RedisAddr)
	}
	cmd.Printf("  Status: %s\n", configuredStatus(settings.WebSearch.IsConfigured()))
	cmd.Println()

	cmd.Println("[Library]")
	cmd.Printf("  Data Dir: %s\n", orDefault(settings.Library.DataDir, "~/.jukebox/data"))
	cmd.Printf("  Audio Dir: %s\n", orDefault(settings.Library.AudioDir, "(current directory)"))
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Addr)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'jukebox settings llm' or 'jukebox settings search' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	reader := bufio.NewReader(cmd.InOrStdin())

	provider, err := chooseLLMProvider(cmd, reader)
	if err != nil {
		return err
	}

	if provider == domain.AIProviderAzure {
		if err := configureAzure(cmd, reader); err != nil {
			return err
		}
	} else {
		model := settingsModel
		if model == "" {
			defaultModel := domain.DefaultLLMModels()[provider]
			if settingsProvider == "" {
				cmd.Printf("Enter model name [%s]: ", defaultModel)
				model = readLine(reader)
			}
			if model == "" {
				model = defaultModel
			}
		}

		apiKey, err := apiKeyFor(cmd, reader, provider.RequiresAPIKey())
		if err != nil {
			return err
		}

		if err := settingsService.SetLLMProvider(provider, model, apiKey); err != nil {
			return fmt.Errorf("failed to configure LLM provider: %w", err)
		}
	}

	if !settingsSkipValidate {
		cmd.Print("Validating configuration... ")
		if err := settingsService.ValidateLLMConfig(); err != nil {
			cmd.Printf("FAILED: %v\n", err)
			return fmt.Errorf("LLM configuration validation failed: %w", err)
		}
		cmd.Println("OK")
	}

	cmd.Printf("LLM provider configured: %s\n", provider.Description())
	return nil
}

func chooseLLMProvider(cmd *cobra.Command, reader *bufio.Reader) (domain.AIProvider, error) {
	if settingsProvider != "" {
		p := domain.AIProvider(strings.ToLower(settingsProvider))
		if !p.IsValid() {
			return "", fmt.Errorf("%w: unknown LLM provider %q", domain.ErrInvalidInput, settingsProvider)
		}
		return p, nil
	}

	cmd.Println("Select LLM Provider")
	providers := domain.AllLLMProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(providers), 1)
	return providers[idx-1], nil
}

func configureAzure(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Print("Enter Azure endpoint (https://<resource>.openai.azure.com): ")
	endpoint := readLine(reader)
	if endpoint == "" {
		return errors.New("endpoint is required for Azure OpenAI")
	}

	deployment := settingsModel
	if deployment == "" {
		cmd.Print("Enter deployment name: ")
		deployment = readLine(reader)
	}
	if deployment == "" {
		return errors.New("deployment name is required for Azure OpenAI")
	}

	cmd.Printf("Enter API version [%s]: ", domain.DefaultAzureAPIVersion)
	apiVersion := readLine(reader)
	if apiVersion == "" {
		apiVersion = domain.DefaultAzureAPIVersion
	}

	apiKey, err := apiKeyFor(cmd, reader, true)
	if err != nil {
		return err
	}

	if err := settingsService.SetAzureDeployment(endpoint, deployment, apiVersion, apiKey); err != nil {
		return fmt.Errorf("failed to configure Azure OpenAI: %w", err)
	}
	return nil
}

func runSettingsSearch(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	reader := bufio.NewReader(cmd.InOrStdin())

	var provider domain.SearchProvider
	if settingsProvider != "" {
		provider = domain.SearchProvider(strings.ToLower(settingsProvider))
		if !provider.IsValid() {
			return fmt.Errorf("%w: unknown search provider %q", domain.ErrInvalidInput, settingsProvider)
		}
	} else {
		cmd.Println("Select Web Search Provider")
		providers := domain.AllSearchProviders()
		for i, p := range providers {
			cmd.Printf("  %d. %s\n", i+1, p.Description())
		}
		cmd.Print("\nEnter choice [1]: ")
		idx := parseChoice(readLine(reader), len(providers), 1)
		provider = providers[idx-1]
	}

	apiKey, err := apiKeyFor(cmd, reader, provider.RequiresAPIKey())
	if err != nil {
		return err
	}

	if err := settingsService.SetWebSearchProvider(provider, apiKey); err != nil {
		return fmt.Errorf("failed to configure web search: %w", err)
	}

	if !settingsSkipValidate {
		cmd.Print("Validating configuration... ")
		if err := settingsService.ValidateWebSearchConfig(); err != nil {
			cmd.Printf("FAILED: %v\n", err)
			return fmt.Errorf("web search configuration validation failed: %w", err)
		}
		cmd.Println("OK")
	}

	cmd.Printf("Web search provider configured: %s\n", provider.Description())
	return nil
}

// apiKeyFor returns the --api-key flag or prompts for a key when required.
func apiKeyFor(cmd *cobra.Command, reader *bufio.Reader, required bool) (string, error) {
	if !required {
		return "", nil
	}
	if settingsAPIKey != "" {
		return settingsAPIKey, nil
	}
	cmd.Print("Enter API key: ")
	apiKey := readPassword(cmd.InOrStdin(), reader)
	cmd.Println()
	if apiKey == "" {
		return "", errors.New("API key is required for this provider")
	}
	return apiKey, nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo when in is a terminal, otherwise it reads
// a line from reader.
func readPassword(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func displayKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	return maskAPIKey(key)
}

func configuredStatus(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
