// Package ask provides the question view: the user asks the music agent,
// reads the trivia answer, and plays one of the found tracks.
package ask

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/jukebox-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/jukebox-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/jukebox-cli/internal/adapters/driving/tui/components/markdown"
	"github.com/custodia-labs/jukebox-cli/internal/adapters/driving/tui/components/nowplaying"
	"github.com/custodia-labs/jukebox-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/jukebox-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/jukebox-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/jukebox-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
	"github.com/custodia-labs/jukebox-cli/internal/core/ports/driving"
)

// Track actions offered by the action menu.
const (
	ActionPlay       = "Play"
	ActionCopyLyrics = "Copy lyrics"
	ActionCancel     = "Cancel"
)

// ActionMenu is a small overlay listing actions for one track.
type ActionMenu struct {
	actions  []string
	selected int
	track    *domain.Track
}

// View is the ask view: query input, trivia panel, track list and now playing.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	list      *list.TrackList
	statusbar *status.Bar
	markdown  *markdown.Renderer
	playing   *nowplaying.Panel

	agent  driving.MusicAgent
	player driving.PlayerService
	ctx    context.Context

	state      *domain.AgentState
	trivia     string // rendered markdown
	width      int
	height     int
	ready      bool
	thinking   bool
	err        error
	focusInput bool
	actionMenu *ActionMenu
}

// NewView creates a new ask view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	agent driving.MusicAgent,
	player driving.PlayerService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewQueryInput(s),
		list:       list.NewTrackList(s),
		statusbar:  status.NewBar(s, km),
		markdown:   markdown.NewRenderer(""),
		playing:    nowplaying.NewPanel(s),
		agent:      agent,
		player:     player,
		ctx:        context.Background(),
		width:      80,
		height:     24,
		focusInput: true,
	}
}

// WithContext sets the context used for agent runs and track actions.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// WithMarkdownStyle selects the glamour style for trivia answers.
func (v *View) WithMarkdownStyle(style string) *View {
	v.markdown = markdown.NewRenderer(style)
	v.markdown.SetWidth(v.width - 4)
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the ask view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.AskCompleted:
		v.handleAskCompleted(msg)
		return v, nil

	case messages.ActionCompleted:
		v.handleActionCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	if v.focusInput {
		v.input, cmd = v.input.Update(msg)
	}
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.actionMenu != nil {
		return v.handleActionMenuKey(msg)
	}

	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	// Ignore input while the agent is running.
	if v.thinking {
		return v, nil
	}

	if v.focusInput {
		if msg.Type == tea.KeyEnter {
			query := strings.TrimSpace(v.input.Value())
			if query == "" {
				return v, nil
			}
			v.thinking = true
			v.err = nil
			v.statusbar.SetState(status.StateThinking)
			v.input.Blur()
			v.focusInput = false
			return v, v.ask(query)
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	switch {
	case keymap.Matches(msg.String(), v.keymap.NewQuestion):
		v.focusInput = true
		v.input.SetValue("")
		return v, v.input.Focus()
	case keymap.Matches(msg.String(), v.keymap.Play):
		return v, v.runAction(ActionPlay, v.list.SelectedTrack())
	case keymap.Matches(msg.String(), v.keymap.CopyLyrics):
		return v, v.runAction(ActionCopyLyrics, v.list.SelectedTrack())
	case msg.Type == tea.KeyEnter:
		if track := v.list.SelectedTrack(); track != nil {
			v.actionMenu = &ActionMenu{
				actions: []string{ActionPlay, ActionCopyLyrics, ActionCancel},
				track:   track,
			}
		}
		return v, nil
	}

	v.list, _ = v.list.Update(msg)
	return v, nil
}

func (v *View) handleActionMenuKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.actionMenu.selected > 0 {
			v.actionMenu.selected--
		}
	case "down", "j":
		if v.actionMenu.selected < len(v.actionMenu.actions)-1 {
			v.actionMenu.selected++
		}
	case "enter":
		action := v.actionMenu.actions[v.actionMenu.selected]
		track := v.actionMenu.track
		v.actionMenu = nil
		return v, v.runAction(action, track)
	case "esc":
		v.actionMenu = nil
	}
	return v, nil
}

// ask runs the agent for query.
func (v *View) ask(query string) tea.Cmd {
	ctx := v.ctx
	agent := v.agent
	return func() tea.Msg {
		if agent == nil {
			return messages.AskCompleted{Err: ErrNoAgent}
		}
		state, err := agent.Ask(ctx, query)
		return messages.AskCompleted{State: state, Err: err}
	}
}

// runAction executes a track action in the background.
func (v *View) runAction(action string, track *domain.Track) tea.Cmd {
	if track == nil || action == ActionCancel {
		return nil
	}
	ctx := v.ctx
	player := v.player
	t := *track
	return func() tea.Msg {
		if player == nil {
			return messages.ActionCompleted{Action: action, Track: t, Err: ErrNoPlayer}
		}
		var err error
		switch action {
		case ActionPlay:
			err = player.Play(ctx, &t)
		case ActionCopyLyrics:
			err = player.CopyLyrics(ctx, &t)
		}
		return messages.ActionCompleted{Action: action, Track: t, Err: err}
	}
}

func (v *View) handleAskCompleted(msg messages.AskCompleted) {
	v.thinking = false
	if msg.Err != nil {
		v.setError(msg.Err)
		v.focusInput = true
		v.input.Focus()
		return
	}

	v.err = nil
	v.state = msg.State
	v.trivia = ""
	if msg.State != nil && msg.State.Trivia != "" {
		v.trivia = v.markdown.Render(msg.State.Trivia)
	}

	var tracks []domain.Track
	if msg.State != nil {
		tracks = msg.State.Tracks
	}
	v.list.SetTitle("Found Tracks")
	v.list.SetTracks(tracks)
	v.statusbar.SetState(status.StateTracks)
	v.statusbar.SetTrackCount(len(tracks))
}

func (v *View) handleActionCompleted(msg messages.ActionCompleted) {
	if msg.Err != nil {
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Action + ": " + msg.Err.Error())
		return
	}
	v.statusbar.SetState(status.StateTracks)
	switch msg.Action {
	case ActionPlay:
		v.statusbar.SetMessage("Playing " + msg.Track.Title)
	case ActionCopyLyrics:
		v.statusbar.SetMessage("Lyrics copied to clipboard")
	}
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// View renders the ask view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 16)
	sections = append(sections, v.styles.Title.Render("Jukebox"), "", v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if v.state != nil {
		if v.trivia != "" {
			sections = append(sections,
				v.styles.Subtitle.Render("Music Trivia"),
				v.styles.Panel.Width(v.panelWidth()).Render(v.trivia),
				"",
			)
		}

		if v.list.IsEmpty() {
			sections = append(sections, v.styles.Warning.Render("No tracks found for this input."))
		} else {
			sections = append(sections, v.list.View(), "", v.playing.View(v.list.SelectedTrack()))
		}
	}

	if v.actionMenu != nil {
		sections = append(sections, "", v.renderActionMenu())
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderActionMenu() string {
	lines := make([]string, 0, len(v.actionMenu.actions))
	for i, action := range v.actionMenu.actions {
		if i == v.actionMenu.selected {
			lines = append(lines, v.styles.Selected.Render("> "+action))
		} else {
			lines = append(lines, v.styles.Normal.Render("  "+action))
		}
	}
	return v.styles.Border.Padding(0, 1).Render(strings.Join(lines, "\n"))
}

func (v *View) panelWidth() int {
	w := v.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, 8)
	v.statusbar.SetWidth(width)
	v.markdown.SetWidth(width - 8)
	v.playing.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current input text.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the input text.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// State returns the last agent result, or nil.
func (v *View) State() *domain.AgentState {
	return v.state
}

// Tracks returns the tracks on screen.
func (v *View) Tracks() []domain.Track {
	return v.list.Tracks()
}

// SelectedTrack returns the highlighted track.
func (v *View) SelectedTrack() *domain.Track {
	return v.list.SelectedTrack()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Thinking reports whether an agent run is in flight.
func (v *View) Thinking() bool {
	return v.thinking
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// ActionMenuVisible reports whether the action overlay is open.
func (v *View) ActionMenuVisible() bool {
	return v.actionMenu != nil
}

// Status returns the status bar for inspection.
func (v *View) Status() *status.Bar {
	return v.statusbar
}

// Reset returns the view to an empty question.
func (v *View) Reset() {
	v.focusInput = true
	v.thinking = false
	v.input.Focus()
	v.input.SetValue("")
	v.list.SetTracks(nil)
	v.state = nil
	v.trivia = ""
	v.err = nil
	v.actionMenu = nil
	v.statusbar.Clear()
}
