// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
)

// AskRequested is a command to run the music agent.
type AskRequested struct {
	Query string
}

// AskCompleted carries the final agent state back to the model.
type AskCompleted struct {
	State *domain.AgentState
	Err   error
}

// TrackSelected is sent when a track is chosen from a list.
type TrackSelected struct {
	Track domain.Track
}

// TracksLoaded carries one page of the library.
type TracksLoaded struct {
	Tracks []domain.Track
	Total  int
	Offset int
	Err    error
}

// ActionCompleted reports the outcome of a track action (play, copy lyrics).
type ActionCompleted struct {
	Action string
	Track  domain.Track
	Err    error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewAsk is the agent question, answer and track view.
	ViewAsk
	// ViewLibrary browses the stored tracks.
	ViewLibrary
	// ViewHelp is the help/keybindings view.
	ViewHelp
	// ViewSettings is the provider configuration view.
	ViewSettings
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewAsk:
		return "ask"
	case ViewLibrary:
		return "library"
	case ViewHelp:
		return "help"
	case ViewSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}
