package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
)

// mockAgent implements driving.MusicAgent for CLI tests.
type mockAgent struct {
	AskFunc func(ctx context.Context, query string) (*domain.AgentState, error)
	queries []string
}

func (m *mockAgent) Ask(ctx context.Context, query string) (*domain.AgentState, error) {
	m.queries = append(m.queries, query)
	if m.AskFunc != nil {
		return m.AskFunc(ctx, query)
	}
	state := domain.NewAgentState("run-1", query)
	state.QueryType = domain.QueryTypeTrack
	state.Tracks = []domain.Track{{ID: 1, Title: "Bohemian Rhapsody", Artist: "Queen", Lyrics: "Is this the real life?"}}
	return &state, nil
}

// mockLibrary implements driving.LibraryService backed by a slice.
type mockLibrary struct {
	tracks    []domain.Track
	removed   []int64
	ImportErr error
}

func (m *mockLibrary) Search(_ context.Context, title, artist string) ([]domain.Track, error) {
	var out []domain.Track
	for _, t := range m.tracks {
		if (title != "" && strings.Contains(t.Title, title)) || (artist != "" && strings.Contains(t.Artist, artist)) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockLibrary) Get(_ context.Context, id int64) (*domain.Track, error) {
	for i := range m.tracks {
		if m.tracks[i].ID == id {
			t := m.tracks[i]
			return &t, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockLibrary) List(_ context.Context, limit, offset int) ([]domain.Track, error) {
	if offset >= len(m.tracks) {
		return []domain.Track{}, nil
	}
	end := offset + limit
	if end > len(m.tracks) {
		end = len(m.tracks)
	}
	return m.tracks[offset:end], nil
}

func (m *mockLibrary) Add(_ context.Context, t domain.Track) (*domain.Track, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	t.ID = int64(len(m.tracks) + 1)
	m.tracks = append(m.tracks, t)
	return &t, nil
}

func (m *mockLibrary) Remove(_ context.Context, id int64) error {
	if _, err := m.Get(context.Background(), id); err != nil {
		return err
	}
	m.removed = append(m.removed, id)
	return nil
}

func (m *mockLibrary) Count(_ context.Context) (int, error) {
	return len(m.tracks), nil
}

func (m *mockLibrary) Import(ctx context.Context, tracks []domain.Track) (int, error) {
	if m.ImportErr != nil {
		return 0, m.ImportErr
	}
	for _, t := range tracks {
		if _, err := m.Add(ctx, t); err != nil {
			return 0, err
		}
	}
	return len(tracks), nil
}

// mockPlayer implements driving.PlayerService.
type mockPlayer struct {
	PlayErr error
	played  []string
}

func (m *mockPlayer) Play(_ context.Context, t *domain.Track) error {
	if m.PlayErr != nil {
		return m.PlayErr
	}
	m.played = append(m.played, t.Title)
	return nil
}

func (m *mockPlayer) CopyLyrics(_ context.Context, _ *domain.Track) error {
	return nil
}

// mockSettings implements driving.SettingsService in memory.
type mockSettings struct {
	settings    domain.AppSettings
	ValidateErr error
	PingErr     error
	azure       []string
}

func newMockSettings() *mockSettings {
	return &mockSettings{settings: domain.DefaultAppSettings()}
}

func (m *mockSettings) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettings) Save(s *domain.AppSettings) error {
	m.settings = *s
	return nil
}

func (m *mockSettings) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	m.settings.LLM = domain.LLMSettings{Provider: provider, Model: model, APIKey: apiKey}
	return nil
}

func (m *mockSettings) SetAzureDeployment(endpoint, deployment, apiVersion, apiKey string) error {
	m.azure = []string{endpoint, deployment, apiVersion, apiKey}
	m.settings.LLM = domain.LLMSettings{
		Provider:   domain.AIProviderAzure,
		BaseURL:    endpoint,
		Deployment: deployment,
		APIVersion: apiVersion,
		APIKey:     apiKey,
	}
	return nil
}

func (m *mockSettings) SetWebSearchProvider(provider domain.SearchProvider, apiKey string) error {
	m.settings.WebSearch.Provider = provider
	m.settings.WebSearch.APIKey = apiKey
	return nil
}

func (m *mockSettings) Validate() error { return m.ValidateErr }

func (m *mockSettings) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }

func (m *mockSettings) ValidateLLMConfig() error { return m.PingErr }

func (m *mockSettings) ValidateWebSearchConfig() error { return m.PingErr }

// testServices holds the mocks installed by setupTestServices.
type testServices struct {
	agent    *mockAgent
	library  *mockLibrary
	player   *mockPlayer
	settings *mockSettings
}

// setupTestServices installs mock services and returns them with a cleanup func.
func setupTestServices() (*testServices, func()) {
	ts := &testServices{
		agent: &mockAgent{},
		library: &mockLibrary{tracks: []domain.Track{
			{ID: 1, Title: "Bohemian Rhapsody", Artist: "Queen", Lyrics: "Is this the real life?"},
			{ID: 2, Title: "Hey Jude", Artist: "The Beatles"},
		}},
		player:   &mockPlayer{},
		settings: newMockSettings(),
	}
	SetServices(&Services{
		Agent:    ts.agent,
		Library:  ts.library,
		Player:   ts.player,
		Settings: ts.settings,
	})
	return ts, func() { SetServices(nil) }
}

// resetFlags restores flag variables, which cobra keeps between executions.
func resetFlags() {
	askJSON, askLyrics = false, false
	libraryLimit, libraryOffset, libraryJSON = 50, 0, false
	addTitle, addArtist, addFile, addLyricsFile = "", "", "", ""
	settingsProvider, settingsModel, settingsAPIKey, settingsSkipValidate = "", "", "", false
	serveAddr = ""
	verbose = false
	_ = mcpServeCmd.Flags().Set("port", "0")
}

// execute runs the root command with args and optional stdin.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "jukebox", rootCmd.Use)
	assert.Contains(t, rootCmd.Long, "music")
}

func TestRootCmd_HasVerboseFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, flag)
	assert.Equal(t, "v", flag.Shorthand)
	assert.Equal(t, "false", flag.DefValue)
}

func TestRootCmd_RegistersCommands(t *testing.T) {
	want := []string{"ask", "library", "settings", "serve", "mcp", "tui", "version"}
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range want {
		assert.True(t, names[name], "missing command %s", name)
	}
}

func TestRootCmd_PrintsStartupWarnings(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	startupWarnings = []string{"LLM not configured. Run 'jukebox settings llm'"}

	out, err := execute(t, "", "library", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "Warning: LLM not configured")
}

func TestRootCmd_VersionSkipsWarnings(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	startupWarnings = []string{"LLM not configured"}

	out, err := execute(t, "", "version")

	require.NoError(t, err)
	assert.NotContains(t, out, "Warning")
}

func TestSetServices_Nil(t *testing.T) {
	_, cleanup := setupTestServices()
	cleanup()

	assert.Nil(t, agentService)
	assert.Nil(t, libraryService)
	assert.Nil(t, playerService)
	assert.Nil(t, settingsService)
	assert.Nil(t, startupWarnings)
}
