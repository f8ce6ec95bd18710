package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Name used for directory and file naming.
	appName = "pkger"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644

	// stateFileName is the persisted Image-State Cache's filename, per the
	// external-interfaces contract: "<user-cache-dir>/.pkger.state".
	stateFileName = ".pkger.state"
)

// Runtime returns the directory for runtime files (PID files, sockets, if
// any are ever needed).
//
//	Linux: $XDG_RUNTIME_DIR/pkger or /run/user/<uid>/pkger
//	macOS: ~/Library/Caches/pkger/run
func Runtime() string {
	if xdg.RuntimeDir != "" {
		return filepath.Join(xdg.RuntimeDir, appName)
	}
	return filepath.Join(xdg.CacheHome, appName, "run")
}

// CacheDir returns the engine's own directory inside the user cache
// directory. The image-state file is not kept here: StateFile places it
// directly in the user cache directory.
func CacheDir() string {
	return filepath.Join(xdg.CacheHome, appName)
}

// StateFile returns the path to the persisted Image-State Cache.
func StateFile() string {
	return filepath.Join(xdg.CacheHome, stateFileName)
}

// RecipesDir returns the default directory recipes are loaded from.
func RecipesDir() string {
	return filepath.Join(xdg.DataHome, appName, "recipes")
}

// ImagesDir returns the default directory image Dockerfile contexts live
// under, including the auto-generated simple images.
func ImagesDir() string {
	return filepath.Join(xdg.DataHome, appName, "images")
}

// OutputDir returns the default directory finished packages are written
// under.
func OutputDir() string {
	return filepath.Join(xdg.CacheHome, appName, "output")
}
