// Package settings provides the provider configuration view for the TUI.
package settings

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/jukebox-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/jukebox-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
	"github.com/custodia-labs/jukebox-cli/internal/core/ports/driving"
)

// Section tracks which settings section is active.
type Section int

const (
	SectionOverview Section = iota
	SectionLLM
	SectionWebSearch
)

// Key constants for key handling.
const (
	keyDown  = "down"
	keyEnter = "enter"
	keyTab   = "tab"
)

// option is one selectable provider in a section.
type option struct {
	value       string
	description string
	detail      string
	needsKey    bool
}

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	settings *domain.AppSettings
	err      error
	saved    bool

	section     Section
	selected    int
	keyFocused  bool
	apiKeyInput textinput.Model

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	apiKeyInput := textinput.New()
	apiKeyInput.Placeholder = "Enter API key"
	apiKeyInput.EchoMode = textinput.EchoPassword
	apiKeyInput.CharLimit = 256

	return &View{
		styles:          s,
		settingsService: settingsService,
		apiKeyInput:     apiKeyInput,
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

func (v *View) loadSettings() tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsLoaded{Err: fmt.Errorf("settings service not available")}
		}
		settings, err := svc.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		v.err = msg.Err
		if msg.Err == nil {
			v.settings = msg.Settings
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.saved = true
		v.backToOverview()
		return v, v.loadSettings()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() == "esc" {
		if v.section == SectionOverview {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
		v.backToOverview()
		return v, nil
	}

	if v.section == SectionOverview {
		return v.handleOverviewKeys(msg)
	}
	return v.handleProviderKeys(msg)
}

func (v *View) handleOverviewKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < 1 {
			v.selected++
		}
	case keyEnter:
		v.saved = false
		if v.selected == 0 {
			v.section = SectionLLM
		} else {
			v.section = SectionWebSearch
		}
		v.selected = v.currentIndex()
	}
	return v, nil
}

// handleProviderKeys drives both provider pickers; they differ only in options
// and in the save call.
func (v *View) handleProviderKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	opts := v.options()

	if v.keyFocused {
		switch msg.String() {
		case keyTab, "shift+tab":
			v.keyFocused = false
			v.apiKeyInput.Blur()
			return v, nil
		case keyEnter:
			return v, v.save(opts[v.selected], v.apiKeyInput.Value())
		default:
			var cmd tea.Cmd
			v.apiKeyInput, cmd = v.apiKeyInput.Update(msg)
			return v, cmd
		}
	}

	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(opts)-1 {
			v.selected++
		}
	case keyTab:
		if opts[v.selected].needsKey {
			v.keyFocused = true
			return v, v.apiKeyInput.Focus()
		}
	case keyEnter:
		if opts[v.selected].needsKey {
			v.keyFocused = true
			return v, v.apiKeyInput.Focus()
		}
		return v, v.save(opts[v.selected], "")
	}
	return v, nil
}

func (v *View) save(opt option, apiKey string) tea.Cmd {
	svc := v.settingsService
	section := v.section
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: fmt.Errorf("settings service not available")}
		}
		apiKey = strings.TrimSpace(apiKey)
		var err error
		if section == SectionLLM {
			provider := domain.AIProvider(opt.value)
			err = svc.SetLLMProvider(provider, domain.DefaultLLMModels()[provider], apiKey)
		} else {
			err = svc.SetWebSearchProvider(domain.SearchProvider(opt.value), apiKey)
		}
		return messages.SettingsSaved{Err: err}
	}
}

func (v *View) options() []option {
	if v.section == SectionLLM {
		providers := domain.AllLLMProviders()
		opts := make([]option, len(providers))
		for i, p := range providers {
			detail := "Model: " + domain.DefaultLLMModels()[p]
			if p.RequiresBaseURL() {
				detail = "Endpoint and deployment: run 'jukebox settings llm'"
			}
			opts[i] = option{value: string(p), description: p.Description(), detail: detail, needsKey: p.RequiresAPIKey()}
		}
		return opts
	}

	providers := domain.AllSearchProviders()
	opts := make([]option, len(providers))
	for i, p := range providers {
		detail := ""
		if !p.RequiresAPIKey() {
			detail = "No API key needed"
		}
		opts[i] = option{value: string(p), description: p.Description(), detail: detail, needsKey: p.RequiresAPIKey()}
	}
	return opts
}

func (v *View) current() string {
	if v.settings == nil {
		return ""
	}
	if v.section == SectionLLM {
		return string(v.settings.LLM.Provider)
	}
	return string(v.settings.WebSearch.Provider)
}

func (v *View) currentIndex() int {
	cur := v.current()
	for i, o := range v.options() {
		if o.value == cur {
			return i
		}
	}
	return 0
}

func (v *View) backToOverview() {
	v.section = SectionOverview
	v.selected = 0
	v.keyFocused = false
	v.apiKeyInput.SetValue("")
	v.apiKeyInput.Blur()
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		return b.String()
	}

	if v.section == SectionOverview {
		b.WriteString(v.renderOverview())
	} else {
		b.WriteString(v.renderProviderSelect())
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderOverview() string {
	var b strings.Builder

	llm := "Not Set"
	if v.settings.LLM.Provider != "" {
		llm = fmt.Sprintf("%s (%s)", v.settings.LLM.Provider.Description(), v.settings.LLM.Model)
	}
	web := "Not Set"
	if v.settings.WebSearch.Provider != "" {
		web = v.settings.WebSearch.Provider.Description()
	}

	items := []struct {
		label, value string
		configured   bool
	}{
		{"LLM Provider", llm, v.settings.LLM.IsConfigured()},
		{"Web Search", web, v.settings.WebSearch.IsConfigured()},
	}

	for i, item := range items {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}
		line := fmt.Sprintf("%s%s: %s", indicator, item.label, item.value)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		if item.configured {
			b.WriteString(" " + v.styles.Success.Render("[configured]"))
		} else {
			b.WriteString(" " + v.styles.Warning.Render("[needs setup]"))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.saved {
		b.WriteString(v.styles.Success.Render("Saved"))
		b.WriteString("\n")
	}
	if v.settingsService != nil {
		if err := v.settingsService.Validate(); err != nil {
			b.WriteString(v.styles.Warning.Render(fmt.Sprintf("Warning: %s", err.Error())))
		} else {
			b.WriteString(v.styles.Success.Render("Configuration is valid"))
		}
	}
	return b.String()
}

func (v *View) renderProviderSelect() string {
	var b strings.Builder

	title := "Select LLM Provider"
	if v.section == SectionWebSearch {
		title = "Select Web Search Provider"
	}
	b.WriteString(v.styles.Subtitle.Render(title))
	b.WriteString("\n\n")

	opts := v.options()
	cur := v.current()
	for i, o := range opts {
		active := i == v.selected && !v.keyFocused
		indicator := "  "
		if active {
			indicator = "> "
		}
		marker := ""
		if o.value == cur {
			marker = v.styles.Success.Render(" (current)")
		}
		line := indicator + o.description
		if active {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString(marker)
		b.WriteString("\n")
		if o.detail != "" {
			b.WriteString(v.styles.Muted.Render("    " + o.detail))
			b.WriteString("\n")
		}
	}

	if opts[v.selected].needsKey {
		b.WriteString("\n")
		b.WriteString(v.styles.Normal.Render("API Key:"))
		b.WriteString("\n")
		b.WriteString(v.apiKeyInput.View())
		b.WriteString("\n")
	}
	return b.String()
}

func (v *View) renderHelp() string {
	switch {
	case v.section == SectionOverview:
		return v.styles.Help.Render("[j/k] navigate  [enter] edit  [esc] back")
	case v.keyFocused:
		return v.styles.Help.Render("[tab] back to list  [enter] save  [esc] back")
	default:
		return v.styles.Help.Render("[j/k] navigate  [tab] API key  [enter] select  [esc] back")
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Section returns the active section.
func (v *View) Section() Section {
	return v.section
}

// Reset resets the view to initial state.
func (v *View) Reset() {
	v.backToOverview()
	v.err = nil
	v.saved = false
}
