package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/pkgerio/pkger/internal/paths"
)

// CleanCacheCmd is the 'pkger clean-cache' command: it discards the
// persisted Image-State Cache, forcing every image to be rebuilt (not
// merely re-tagged) on the next build.
type CleanCacheCmd struct{}

func (c *CleanCacheCmd) Run(ctx context.Context) error {
	err := os.Remove(paths.StateFile())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	slog.Info("image-state cache cleared")
	return nil
}
