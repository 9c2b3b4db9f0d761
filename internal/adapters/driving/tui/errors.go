package tui

import "errors"

// ErrMissingAgent is returned when the music agent is not provided.
var ErrMissingAgent = errors.New("tui: music agent is required")

// ErrMissingLibrary is returned when the library service is not provided.
var ErrMissingLibrary = errors.New("tui: library service is required")

// ErrMissingPlayer is returned when the player service is not provided.
var ErrMissingPlayer = errors.New("tui: player service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
