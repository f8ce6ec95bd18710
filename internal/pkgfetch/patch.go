package pkgfetch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkgerio/pkger/internal/pkgerr"
	"github.com/pkgerio/pkger/internal/pkgrecipe"
	"github.com/pkgerio/pkger/internal/pkgruntime"
)

// ApplyPatches uploads and applies every patch that targets image, per
// §4.5: each patch source is an http URL (curled), an absolute host
// path, or a path relative to recipeDir; all three land in
// <tmp>/patches/ before `patch -p<strip>` runs in buildDir.
//
// A failing patch is logged as a warning and does not abort the build,
// unless strict is set.
func ApplyPatches(ctx context.Context, c *pkgruntime.Container, patches pkgrecipe.Patches, image, recipeDir, buildDir string, strict bool) error {
	applicable := patches.ForImage(image)
	if len(applicable) == 0 {
		return nil
	}

	if _, err := c.CheckedExec(ctx, pkgruntime.ExecOptions{Cmd: fmt.Sprintf("mkdir -p %s", patchDirName)}); err != nil {
		return pkgerr.Wrap(ErrFetch, err)
	}

	for _, p := range applicable {
		name, err := stagePatch(ctx, c, p, recipeDir)
		if err != nil {
			return err
		}

		strip := p.Strip
		if strip == 0 {
			strip = 1
		}

		cmd := fmt.Sprintf("patch -p%d < %s/%s", strip, patchDirName, name)
		if _, err := c.CheckedExec(ctx, pkgruntime.ExecOptions{Cmd: cmd, WorkingDir: buildDir}); err != nil {
			if strict {
				return pkgerr.Wrapf(ErrFetch, "patch %s failed: %v", p.Patch, err)
			}
			slog.Warn("patch failed, continuing", "patch", p.Patch, "error", err)
		}
	}

	return nil
}

// stagePatch lands one patch in the container's patch directory and
// returns the file name it was given there.
func stagePatch(ctx context.Context, c *pkgruntime.Container, p pkgrecipe.Patch, recipeDir string) (string, error) {
	name := filepath.Base(p.Patch)

	switch {
	case strings.HasPrefix(p.Patch, "http"):
		_, err := c.CheckedExec(ctx, pkgruntime.ExecOptions{Cmd: fmt.Sprintf("curl -LO %s", p.Patch), WorkingDir: patchDirName})
		if err != nil {
			return "", pkgerr.Wrap(ErrFetch, err)
		}
		return name, nil

	case filepath.IsAbs(p.Patch):
		if err := c.CopyFileTo(ctx, p.Patch, patchDirName, name); err != nil {
			return "", err
		}
		return name, nil

	default:
		hostPath := filepath.Join(recipeDir, p.Patch)
		if _, err := os.Stat(hostPath); err != nil {
			return "", pkgerr.Wrap(ErrFetch, err)
		}
		if err := c.CopyFileTo(ctx, hostPath, patchDirName, name); err != nil {
			return "", err
		}
		return name, nil
	}
}
