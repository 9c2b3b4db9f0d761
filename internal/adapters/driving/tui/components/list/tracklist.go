// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/jukebox-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
)

// TrackList displays tracks in a navigable list.
type TrackList struct {
	tracks   []domain.Track
	selected int
	offset   int // index of the first track, for numbering across pages
	title    string
	styles   *styles.Styles
	width    int
	height   int
}

// NewTrackList creates a new track list component.
func NewTrackList(s *styles.Styles) *TrackList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &TrackList{
		title:  "Tracks",
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the track list.
func (l *TrackList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *TrackList) Update(msg tea.Msg) (*TrackList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the track list.
func (l *TrackList) View() string {
	if len(l.tracks) == 0 {
		return l.styles.Muted.Render("No tracks")
	}

	lines := make([]string, 0, len(l.tracks)+2)
	lines = append(lines, l.styles.Subtitle.Render(fmt.Sprintf("%s (%d)", l.title, len(l.tracks))), "")

	// One line per track; keep the selection in view.
	visible := l.height - 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.tracks) {
		end = len(l.tracks)
	}

	for i := start; i < end; i++ {
		lines = append(lines, l.renderTrack(i, &l.tracks[i]))
	}

	return strings.Join(lines, "\n")
}

func (l *TrackList) renderTrack(index int, t *domain.Track) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	label := truncate(t.Label(l.offset+index), l.width-12)
	marker := ""
	if !t.HasAudio() {
		marker = " (no audio)"
	}

	if index == l.selected {
		return l.styles.Selected.Render(indicator+label) + l.styles.Muted.Render(marker)
	}
	return l.styles.Normal.Render(indicator+label) + l.styles.Muted.Render(marker)
}

func truncate(s string, n int) string {
	if n < 10 {
		n = 10
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// SetTracks replaces the list contents and resets the selection.
func (l *TrackList) SetTracks(tracks []domain.Track) {
	l.tracks = tracks
	l.selected = 0
}

// SetOffset sets the index of the first track for numbering.
func (l *TrackList) SetOffset(offset int) {
	l.offset = offset
}

// SetTitle sets the list heading.
func (l *TrackList) SetTitle(title string) {
	l.title = title
}

// Tracks returns the current tracks.
func (l *TrackList) Tracks() []domain.Track {
	return l.tracks
}

// Selected returns the index of the selected track.
func (l *TrackList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *TrackList) SetSelected(index int) {
	if index >= 0 && index < len(l.tracks) {
		l.selected = index
	}
}

// SelectedTrack returns the currently selected track, or nil if none.
func (l *TrackList) SelectedTrack() *domain.Track {
	if l.selected < 0 || l.selected >= len(l.tracks) {
		return nil
	}
	return &l.tracks[l.selected]
}

// MoveUp moves selection up.
func (l *TrackList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *TrackList) MoveDown() {
	if l.selected < len(l.tracks)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *TrackList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of tracks.
func (l *TrackList) Count() int {
	return len(l.tracks)
}

// IsEmpty returns whether the list is empty.
func (l *TrackList) IsEmpty() bool {
	return len(l.tracks) == 0
}
