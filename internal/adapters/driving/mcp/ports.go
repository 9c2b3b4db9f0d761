package mcp

import (
	"github.com/custodia-labs/jukebox-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the MCP server.
type Ports struct {
	// Agent answers music questions.
	Agent driving.MusicAgent

	// Library gives read access to stored tracks.
	Library driving.LibraryService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Agent == nil {
		return ErrMissingAgent
	}
	if p.Library == nil {
		return ErrMissingLibrary
	}
	return nil
}
