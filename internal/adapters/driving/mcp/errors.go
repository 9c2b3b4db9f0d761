// Package mcp provides an MCP (Model Context Protocol) server adapter for Jukebox.
// It lets AI assistants ask the music agent and browse the local track library.
package mcp

import "errors"

// ErrMissingAgent is returned when the music agent is not provided.
var ErrMissingAgent = errors.New("mcp: music agent is required")

// ErrMissingLibrary is returned when the library service is not provided.
var ErrMissingLibrary = errors.New("mcp: library service is required")
