package cli

import (
	"os"
	"path/filepath"

	"github.com/pkgerio/pkger/internal/paths"
	"github.com/pkgerio/pkger/internal/pkgsign"
)

// signingKeyFileName is the conventional location of a user's armored
// GPG private key, inside the engine's cache directory.
const signingKeyFileName = "signing.key"

// loadConfiguredKey loads the signing key at <cache-dir>/signing.key
// (see paths.CacheDir) if present. A missing key file is not an error: signing is simply
// disabled for the run.
func loadConfiguredKey() (*pkgsign.Key, error) {
	path := filepath.Join(paths.CacheDir(), signingKeyFileName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return pkgsign.LoadKey(path, os.Getenv("PKGER_GPG_PASSPHRASE"))
}
