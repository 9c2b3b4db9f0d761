// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data under the Jukebox home directory (~/.jukebox).
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage (config.toml)
//   - PromptStore: user-editable prompt templates (prompts/*.txt)
//   - Watcher: reloads a PromptStore when its files change
package file

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeDirName is the directory under the user's home holding all Jukebox files.
const HomeDirName = ".jukebox"

// DefaultDir returns ~/.jukebox.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, HomeDirName), nil
}
