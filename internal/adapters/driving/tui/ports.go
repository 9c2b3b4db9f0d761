// Package tui provides an interactive terminal user interface for jukebox.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/jukebox-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
type Ports struct {
	// Agent answers questions and finds tracks.
	Agent driving.MusicAgent

	// Library browses the stored tracks.
	Library driving.LibraryService

	// Player plays audio and copies lyrics.
	Player driving.PlayerService

	// Settings manages application settings. Optional; the settings view
	// reports an error when it is missing.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Agent == nil {
		return ErrMissingAgent
	}
	if p.Library == nil {
		return ErrMissingLibrary
	}
	if p.Player == nil {
		return ErrMissingPlayer
	}
	return nil
}
