package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkgerio/pkger/internal/paths"
	"github.com/pkgerio/pkger/internal/pkgimage"
)

// ListCmd is the 'pkger list' command.
type ListCmd struct {
	Images   ListImagesCmd   `cmd:"" help:"List available images, curated and default."`
	Recipes  ListRecipesCmd  `cmd:"" help:"List recipes found in the recipes directory."`
	Packages ListPackagesCmd `cmd:"" help:"List packages previously built to the output directory."`
}

// ListImagesCmd lists every user-curated image directory plus the
// fixed table of auto-generated default images.
type ListImagesCmd struct{}

func (c *ListImagesCmd) Run(ctx context.Context) error {
	names := make(map[string]bool)
	for _, img := range pkgimage.AllSimple() {
		names[img.Name+" (default)"] = true
	}

	entries, err := os.ReadDir(paths.ImagesDir())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			names[e.Name()] = true
		}
	}

	printSorted(names)
	return nil
}

// ListRecipesCmd lists every recipe subdirectory under the recipes
// directory.
type ListRecipesCmd struct{}

func (c *ListRecipesCmd) Run(ctx context.Context) error {
	entries, err := os.ReadDir(paths.RecipesDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	names := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names[e.Name()] = true
		}
	}
	printSorted(names)
	return nil
}

// ListPackagesCmd lists every artifact file written under the output
// directory, grouped by the image subdirectory it landed in.
type ListPackagesCmd struct{}

func (c *ListPackagesCmd) Run(ctx context.Context) error {
	root := paths.OutputDir()
	imageDirs, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, imgDir := range imageDirs {
		if !imgDir.IsDir() {
			continue
		}
		files, err := os.ReadDir(filepath.Join(root, imgDir.Name()))
		if err != nil {
			return err
		}
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			fmt.Printf("%s/%s\n", imgDir.Name(), f.Name())
		}
	}
	return nil
}

func printSorted(names map[string]bool) {
	list := make([]string, 0, len(names))
	for n := range names {
		list = append(list, n)
	}
	sort.Strings(list)
	for _, n := range list {
		fmt.Println(n)
	}
}
