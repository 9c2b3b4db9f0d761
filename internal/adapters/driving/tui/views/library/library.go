// Package library provides the track library browser for the TUI.
package library

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/jukebox-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/jukebox-cli/internal/adapters/driving/tui/components/nowplaying"
	"github.com/custodia-labs/jukebox-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/jukebox-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/jukebox-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/jukebox-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
	"github.com/custodia-labs/jukebox-cli/internal/core/ports/driving"
)

// PageSize is the number of tracks loaded per page.
const PageSize = 20

// ErrNoLibrary indicates that no library service was provided.
var ErrNoLibrary = errors.New("library service is required")

// View lists library tracks one page at a time, with an optional filter.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	list      *list.TrackList
	playing   *nowplaying.Panel
	statusbar *status.Bar
	filter    textinput.Model

	library driving.LibraryService
	player  driving.PlayerService
	ctx     context.Context

	offset    int
	total     int
	filtering bool // filter input has focus
	query     string
	loading   bool
	err       error
	width     int
	height    int
	ready     bool
}

// NewView creates a new library view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	library driving.LibraryService,
	player driving.PlayerService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	filter := textinput.New()
	filter.Placeholder = "title or artist"
	filter.CharLimit = 128

	l := list.NewTrackList(s)
	l.SetTitle("Library")

	return &View{
		styles:    s,
		keymap:    km,
		list:      l,
		playing:   nowplaying.NewPanel(s),
		statusbar: status.NewBar(s, km),
		filter:    filter,
		library:   library,
		player:    player,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for library calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the first page.
func (v *View) Init() tea.Cmd {
	v.statusbar.SetState(status.StateLibrary)
	return v.load(v.offset)
}

// load fetches the page at offset, or the filter results when a query is set.
func (v *View) load(offset int) tea.Cmd {
	v.loading = true
	ctx := v.ctx
	library := v.library
	query := v.query
	return func() tea.Msg {
		if library == nil {
			return messages.TracksLoaded{Err: ErrNoLibrary}
		}
		if query != "" {
			tracks, err := library.Search(ctx, query, query)
			return messages.TracksLoaded{Tracks: tracks, Total: len(tracks), Err: err}
		}
		tracks, err := library.List(ctx, PageSize, offset)
		if err != nil {
			return messages.TracksLoaded{Err: err}
		}
		total, err := library.Count(ctx)
		return messages.TracksLoaded{Tracks: tracks, Total: total, Offset: offset, Err: err}
	}
}

// Update handles messages for the library view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.TracksLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.err = nil
		v.offset = msg.Offset
		v.total = msg.Total
		v.list.SetOffset(msg.Offset)
		v.list.SetTracks(msg.Tracks)
		v.statusbar.SetState(status.StateLibrary)
		return v, nil

	case messages.ActionCompleted:
		if msg.Err != nil {
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Action + ": " + msg.Err.Error())
			return v, nil
		}
		v.statusbar.SetState(status.StateLibrary)
		v.statusbar.SetMessage(fmt.Sprintf("%s: %s", msg.Action, msg.Track.Title))
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

//nolint:gocyclo // key dispatch
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.filtering {
		switch msg.Type {
		case tea.KeyEnter:
			v.filtering = false
			v.filter.Blur()
			v.query = strings.TrimSpace(v.filter.Value())
			return v, v.load(0)
		case tea.KeyEsc:
			v.filtering = false
			v.filter.Blur()
			return v, nil
		default:
			var cmd tea.Cmd
			v.filter, cmd = v.filter.Update(msg)
			return v, cmd
		}
	}

	key := msg.String()
	switch {
	case msg.Type == tea.KeyEsc:
		if v.query != "" {
			v.clearFilter()
			return v, v.load(0)
		}
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case key == "/":
		v.filtering = true
		return v, v.filter.Focus()
	case keymap.Matches(key, v.keymap.NextPage):
		if v.query == "" && v.offset+PageSize < v.total {
			return v, v.load(v.offset + PageSize)
		}
	case keymap.Matches(key, v.keymap.PrevPage):
		if v.query == "" && v.offset > 0 {
			prev := v.offset - PageSize
			if prev < 0 {
				prev = 0
			}
			return v, v.load(prev)
		}
	case keymap.Matches(key, v.keymap.Play):
		return v, v.runAction("Playing", v.list.SelectedTrack())
	case keymap.Matches(key, v.keymap.CopyLyrics):
		return v, v.runAction("Copied lyrics", v.list.SelectedTrack())
	default:
		v.list, _ = v.list.Update(msg)
	}
	return v, nil
}

func (v *View) runAction(action string, track *domain.Track) tea.Cmd {
	if track == nil {
		return nil
	}
	ctx := v.ctx
	player := v.player
	t := *track
	return func() tea.Msg {
		if player == nil {
			return messages.ActionCompleted{Action: action, Track: t, Err: errors.New("player is not available")}
		}
		var err error
		if action == "Playing" {
			err = player.Play(ctx, &t)
		} else {
			err = player.CopyLyrics(ctx, &t)
		}
		return messages.ActionCompleted{Action: action, Track: t, Err: err}
	}
}

func (v *View) clearFilter() {
	v.query = ""
	v.filter.SetValue("")
}

// View renders the library.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 12)
	sections = append(sections, v.styles.Title.Render("Library"), "")

	if v.filtering || v.query != "" {
		sections = append(sections, v.styles.Normal.Render("Filter: ")+v.filter.View(), "")
	}

	switch {
	case v.err != nil:
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()))
	case v.loading && v.list.IsEmpty():
		sections = append(sections, v.styles.Muted.Render("Loading tracks..."))
	case v.list.IsEmpty() && v.query == "":
		sections = append(sections, v.styles.Muted.Render("The library is empty. Add tracks with 'jukebox library add' or 'jukebox library import'."))
	default:
		sections = append(sections, v.list.View(), "", v.pageInfo(), "", v.playing.View(v.list.SelectedTrack()))
	}

	sections = append(sections, "", v.styles.Help.Render("[/] filter"), v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) pageInfo() string {
	if v.query != "" {
		return v.styles.Muted.Render(fmt.Sprintf("%d matches for %q", v.total, v.query))
	}
	if v.total == 0 {
		return ""
	}
	end := v.offset + v.list.Count()
	return v.styles.Muted.Render(fmt.Sprintf("Tracks %d-%d of %d", v.offset+1, end, v.total))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.list.SetDimensions(width, 12)
	v.playing.SetWidth(width)
	v.statusbar.SetWidth(width)
	v.filter.Width = width / 2
}

// Reset clears the filter and returns to the first page.
func (v *View) Reset() {
	v.clearFilter()
	v.filtering = false
	v.filter.Blur()
	v.offset = 0
	v.err = nil
	v.statusbar.Clear()
}

// Tracks returns the tracks on the current page.
func (v *View) Tracks() []domain.Track {
	return v.list.Tracks()
}

// SelectedTrack returns the highlighted track.
func (v *View) SelectedTrack() *domain.Track {
	return v.list.SelectedTrack()
}

// Offset returns the index of the first track on the page.
func (v *View) Offset() int {
	return v.offset
}

// Total returns the library size, or the match count while filtering.
func (v *View) Total() int {
	return v.total
}

// Filtering reports whether the filter input has focus.
func (v *View) Filtering() bool {
	return v.filtering
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}

// Status returns the status bar for inspection.
func (v *View) Status() *status.Bar {
	return v.statusbar
}
