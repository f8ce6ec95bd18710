package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pkgerio/pkger/internal/paths"
)

// EditCmd groups the three "open this in $EDITOR" subcommands.
type EditCmd struct {
	Recipe EditRecipeCmd `cmd:"" help:"Edit a recipe."`
	Image  EditImageCmd  `cmd:"" help:"Edit an image's Dockerfile."`
	Config EditConfigCmd `cmd:"" help:"Edit the engine config file."`
}

// EditRecipeCmd opens <recipes-dir>/<name>/recipe.yml in $EDITOR.
type EditRecipeCmd struct {
	Name string `arg:"" help:"Recipe name."`
}

func (c *EditRecipeCmd) Run(ctx context.Context) error {
	return openEditor(filepath.Join(paths.RecipesDir(), c.Name, "recipe.yml"))
}

// EditImageCmd opens <images-dir>/<name>/Dockerfile in $EDITOR.
type EditImageCmd struct {
	Name string `arg:"" help:"Image name."`
}

func (c *EditImageCmd) Run(ctx context.Context) error {
	return openEditor(filepath.Join(paths.ImagesDir(), c.Name, "Dockerfile"))
}

// EditConfigCmd opens the engine's config file in $EDITOR.
type EditConfigCmd struct{}

func (c *EditConfigCmd) Run(ctx context.Context) error {
	return openEditor(filepath.Join(paths.CacheDir(), "config.yml"))
}

// openEditor launches $EDITOR (defaulting to vi) on path, creating its
// parent directory if needed.
func openEditor(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), paths.DefaultDirMode); err != nil {
		return err
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("edit %s: %w", path, err)
	}
	return nil
}
