package pkgfetch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/pkgerio/pkger/internal/pkgerr"
	"github.com/pkgerio/pkger/internal/pkgrecipe"
	"github.com/pkgerio/pkger/internal/pkgruntime"
)

var ErrFetch = errors.New("source fetch error")

const (
	tmpDirName   = "/tmp/pkger-src"
	patchDirName = tmpDirName + "/patches"
)

// Fetch materializes a recipe's source tree into the container's tmp
// directory and unpacks it into buildDir, per the three source shapes in
// §4.5: git (cloned host-side then uploaded), HTTP (curled in-container),
// or filesystem (uploaded as a single-entry TAR).
func Fetch(ctx context.Context, c *pkgruntime.Container, recipe *pkgrecipe.Recipe, buildDir string) error {
	if _, err := c.CheckedExec(ctx, pkgruntime.ExecOptions{Cmd: fmt.Sprintf("mkdir -p %s %s", tmpDirName, buildDir)}); err != nil {
		return pkgerr.Wrap(ErrFetch, err)
	}

	switch {
	case recipe.Metadata.Git != nil:
		if err := fetchGit(ctx, c, recipe.Metadata.Git); err != nil {
			return err
		}
	case strings.HasPrefix(recipe.Metadata.Source, "http"):
		if err := fetchHTTP(ctx, c, recipe.Metadata.Source); err != nil {
			return err
		}
	case recipe.Metadata.Source != "":
		if err := fetchFile(ctx, c, recipe.Metadata.Source); err != nil {
			return err
		}
	default:
		return nil
	}

	return dispatch(ctx, c, buildDir)
}

// fetchGit clones url (host-side, via go-git) into a temp directory, TARs
// the clone, and uploads-and-extracts it into the container's tmp dir.
func fetchGit(ctx context.Context, c *pkgruntime.Container, src *pkgrecipe.GitSource) error {
	branch := src.Branch
	if branch == "" {
		branch = "master"
	}

	dir, err := os.MkdirTemp("", "pkger-git-")
	if err != nil {
		return pkgerr.Wrap(ErrFetch, err)
	}
	defer os.RemoveAll(dir)

	_, err = git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:           src.URL,
		ReferenceName: plumbing.NewBranchReferenceName(branch),
		SingleBranch:  true,
		Depth:         1,
	})
	if err != nil {
		return pkgerr.Wrap(ErrFetch, err)
	}

	if err := os.RemoveAll(dir + "/.git"); err != nil {
		return pkgerr.Wrap(ErrFetch, err)
	}

	return c.CopyFileTo(ctx, dir, tmpDirName, "source")
}

// fetchHTTP curls source into the container's tmp dir.
func fetchHTTP(ctx context.Context, c *pkgruntime.Container, source string) error {
	_, err := c.CheckedExec(ctx, pkgruntime.ExecOptions{
		Cmd:        fmt.Sprintf("curl -LO %s", source),
		WorkingDir: tmpDirName,
	})
	if err != nil {
		return pkgerr.Wrap(ErrFetch, err)
	}
	return nil
}

// fetchFile uploads a local source file into the container's tmp dir as
// a single-entry TAR.
func fetchFile(ctx context.Context, c *pkgruntime.Container, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return pkgerr.Wrap(ErrFetch, err)
	}
	return c.CopyFileTo(ctx, path, tmpDirName, info.Name())
}

// dispatch inspects every entry that landed in the container's tmp dir
// and routes it into buildDir: a directory (the uploaded git clone) has
// its contents copied, tarballs are extracted, zips unzipped, anything
// else copied as-is.
func dispatch(ctx context.Context, c *pkgruntime.Container, buildDir string) error {
	script := fmt.Sprintf(`
for f in %s/*; do
  if [ -d "$f" ]; then
    cp -r "$f"/. %s
    continue
  fi
  [ -f "$f" ] || continue
  case "$f" in
    *.tar|*.tar.gz|*.tgz|*.tar.bz2|*.tar.xz)
      tar -xf "$f" -C %s ;;
    *.zip)
      unzip -o "$f" -d %s ;;
    *)
      cp -r "$f" %s ;;
  esac
done
`, tmpDirName, buildDir, buildDir, buildDir, buildDir)

	_, err := c.CheckedExec(ctx, pkgruntime.ExecOptions{Cmd: script, Shell: "/bin/bash"})
	if err != nil {
		return pkgerr.Wrap(ErrFetch, err)
	}
	return nil
}
