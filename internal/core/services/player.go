package services

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
	"github.com/custodia-labs/jukebox-cli/internal/core/ports/driving"
)

// Operating system identifiers.
const (
	osDarwin  = "darwin"
	osLinux   = "linux"
	osWindows = "windows"
)

// Ensure PlayerService implements the interface.
var _ driving.PlayerService = (*PlayerService)(nil)

// commandRunner runs an external program, feeding stdin when non-empty.
type commandRunner func(stdin string, name string, args ...string) error

// PlayerService plays tracks and copies lyrics using OS utilities.
type PlayerService struct {
	goos     string
	run      commandRunner
	lookPath func(string) (string, error)
}

// NewPlayerService creates a player for the current platform.
func NewPlayerService() *PlayerService {
	return &PlayerService{
		goos:     runtime.GOOS,
		run:      runCommand,
		lookPath: exec.LookPath,
	}
}

// Play opens the track's audio file in the default application.
func (s *PlayerService) Play(_ context.Context, track *domain.Track) error {
	if track == nil {
		return fmt.Errorf("%w: track is nil", domain.ErrInvalidInput)
	}
	if !track.HasAudio() {
		return fmt.Errorf("%w: %s", domain.ErrAudioNotFound, track.FilePath)
	}

	name, args, err := openCommand(s.goos, track.FilePath)
	if err != nil {
		return err
	}
	// The player runs detached; Play does not wait for playback to finish.
	return s.run("", name, args...)
}

// CopyLyrics copies the track's lyrics to the system clipboard.
func (s *PlayerService) CopyLyrics(_ context.Context, track *domain.Track) error {
	if track == nil {
		return fmt.Errorf("%w: track is nil", domain.ErrInvalidInput)
	}
	if !track.HasLyrics() {
		return fmt.Errorf("%w: no lyrics for %s", domain.ErrNotFound, track.Title)
	}

	name, args, err := s.clipboardCommand()
	if err != nil {
		return err
	}
	return s.run(track.Lyrics, name, args...)
}

// openCommand returns the OS-specific command that opens path.
func openCommand(goos, path string) (string, []string, error) {
	switch goos {
	case osDarwin:
		return "open", []string{path}, nil
	case osLinux:
		return "xdg-open", []string{path}, nil
	case osWindows:
		return "cmd", []string{"/c", "start", "", path}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

// clipboardCommand picks a clipboard utility for the platform.
func (s *PlayerService) clipboardCommand() (string, []string, error) {
	switch s.goos {
	case osDarwin:
		return "pbcopy", nil, nil
	case osLinux:
		// Try xclip first, fall back to xsel
		if _, err := s.lookPath("xclip"); err == nil {
			return "xclip", []string{"-selection", "clipboard"}, nil
		}
		if _, err := s.lookPath("xsel"); err == nil {
			return "xsel", []string{"--clipboard", "--input"}, nil
		}
		return "", nil, fmt.Errorf("no clipboard utility found (install xclip or xsel)")
	case osWindows:
		return "cmd", []string{"/c", "clip"}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", s.goos)
	}
}

func runCommand(stdin string, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
		return cmd.Run()
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
