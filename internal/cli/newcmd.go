package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkgerio/pkger/internal/paths"
)

// NewCmd groups the scaffolding subcommands.
type NewCmd struct {
	Recipe NewRecipeCmd `cmd:"" help:"Scaffold a new recipe."`
	Image  NewImageCmd  `cmd:"" help:"Scaffold a new image."`
}

const recipeTemplate = `metadata:
  name: %s
  version: "0.1.0"
  description: ""
  license: ""
  images: []

env: {}
configure:
  steps: []
build:
  steps: []
install:
  steps: []
`

const dockerfileTemplate = `FROM debian:latest
`

// NewRecipeCmd scaffolds <recipes-dir>/<name>/recipe.yml.
type NewRecipeCmd struct {
	Name string `arg:"" help:"Recipe name."`
}

func (c *NewRecipeCmd) Run(ctx context.Context) error {
	dir := filepath.Join(paths.RecipesDir(), c.Name)
	if err := os.MkdirAll(dir, paths.DefaultDirMode); err != nil {
		return err
	}

	path := filepath.Join(dir, "recipe.yml")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	return os.WriteFile(path, []byte(fmt.Sprintf(recipeTemplate, c.Name)), paths.DefaultFileMode)
}

// NewImageCmd scaffolds <images-dir>/<name>/Dockerfile.
type NewImageCmd struct {
	Name string `arg:"" help:"Image name."`
}

func (c *NewImageCmd) Run(ctx context.Context) error {
	dir := filepath.Join(paths.ImagesDir(), c.Name)
	if err := os.MkdirAll(dir, paths.DefaultDirMode); err != nil {
		return err
	}

	path := filepath.Join(dir, "Dockerfile")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	return os.WriteFile(path, []byte(dockerfileTemplate), paths.DefaultFileMode)
}
