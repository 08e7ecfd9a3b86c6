// Package slicer locates the slicer's local configuration on disk and loads
// the printer registry. Discovery is a thin collaborator: the core pipeline
// only ever sees already-parsed presets and plain directory paths.
package slicer

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/agentstation/filasync/pkg/errors"
	"github.com/agentstation/filasync/pkg/logging"
)

// Paths are the two directories the pipeline reads from.
type Paths struct {
	// UserPresetDir holds the user's filament preset files, one per preset.
	UserPresetDir string

	// SystemProfileDir is the root of the slicer-shipped profile tree where
	// system and root templates are searched.
	SystemProfileDir string
}

// slicerNames are the supported slicer config directory names, in preference
// order.
var slicerNames = []string{"AnycubicSlicerNext", "OrcaSlicer", "BambuStudio"}

// Discover finds the first supported slicer configuration on this machine.
func Discover() (Paths, error) {
	root, err := configRoot()
	if err != nil {
		return Paths{}, err
	}

	for _, name := range slicerNames {
		base := filepath.Join(root, name)
		userDir := filepath.Join(base, "user", "default", "filament")
		if info, err := os.Stat(userDir); err != nil || !info.IsDir() {
			continue
		}
		logging.Debug().Str("slicer", name).Str("dir", userDir).Msg("Found slicer configuration")
		return Paths{
			UserPresetDir:    userDir,
			SystemProfileDir: filepath.Join(base, "system"),
		}, nil
	}

	return Paths{}, errors.NewNotFoundError("slicer configuration", root)
}

// configRoot returns the per-OS directory that slicers keep their
// configuration under.
func configRoot() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return appdata, nil
		}
		return "", errors.NewConfigError("discover", "APPDATA not set", nil)
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.WrapIO("stat", "home", err)
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.WrapIO("stat", "home", err)
		}
		return filepath.Join(home, ".config"), nil
	}
}
