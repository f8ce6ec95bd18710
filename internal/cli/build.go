package cli

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkgerio/pkger/internal/paths"
	"github.com/pkgerio/pkger/internal/pkgbuild"
	"github.com/pkgerio/pkger/internal/pkgimage"
	"github.com/pkgerio/pkger/internal/pkgrecipe"
	"github.com/pkgerio/pkger/internal/pkgruntime"
	"github.com/pkgerio/pkger/internal/pkgsign"
	"github.com/pkgerio/pkger/internal/pkgstate"
)

// BuildCmd is the 'pkger build' command: it resolves a set of build
// tasks from the recipes directory and runs them through the Job
// Supervisor (C14).
type BuildCmd struct {
	Recipes []string `arg:"" optional:"" help:"Recipe names to build (default: every recipe found)."`
	Simple  []string `help:"Build the default image for these targets (rpm, deb, pkg, apk, gzip), ignoring any recipe-declared images." placeholder:"TARGET"`
	Images  []string `help:"Restrict to these image names among a recipe's declared images." placeholder:"IMAGE"`
	All     bool     `help:"Build every image a recipe declares, ignoring --images."`
	NoSign  bool     `help:"Disable package signing even if a signing key is configured."`
}

// Run loads the selected recipes, resolves them into build tasks, and
// drives them through a Job Supervisor sharing one runtime connection
// and image-state cache.
func (c *BuildCmd) Run(ctx context.Context, cancel *pkgbuild.Cancel) error {
	recipes, err := loadRecipes(paths.RecipesDir(), c.Recipes)
	if err != nil {
		return err
	}
	if len(recipes) == 0 {
		slog.Warn("no recipes to build")
		return nil
	}

	rt, err := pkgruntime.New(ctx, RootCmd.Runtime, sessionID())
	if err != nil {
		return err
	}
	defer rt.Close()

	state, err := pkgstate.Load(paths.StateFile())
	if err != nil {
		return err
	}

	var key *pkgsign.Key
	if !c.NoSign {
		key, err = loadConfiguredKey()
		if err != nil {
			return err
		}
	}

	builder := pkgimage.NewBuilder(rt, state)
	orch := pkgbuild.New(rt, builder, paths.ImagesDir(), paths.OutputDir(), key, cancel, false)
	sup := pkgbuild.NewSupervisor(orch, RootCmd.Quiet)

	tasks := c.resolveTasks(recipes)
	if len(tasks) == 0 {
		slog.Warn("no images matched the given selection")
		return nil
	}

	results, err := sup.Run(ctx, tasks)
	if err != nil {
		return err
	}

	for _, r := range results {
		if r.Err != nil {
			slog.Error("build failed", "recipe", r.Task.Recipe.Metadata.Name, "image", r.Task.Image, "error", r.Err)
			continue
		}
		slog.Info("build complete", "recipe", r.Task.Recipe.Metadata.Name, "image", r.Task.Image, "artifact", r.ArtifactPath)
	}

	if state.Dirty() {
		if err := state.Save(); err != nil {
			return err
		}
	}

	if pkgbuild.Failed(results) {
		return fmt.Errorf("%d of %d builds failed", failedCount(results), len(results))
	}
	return nil
}

// resolveTasks expands the recipe set into one Task per (recipe, image,
// target) selected by the command's flags.
func (c *BuildCmd) resolveTasks(recipes []loadedRecipe) []pkgbuild.Task {
	var tasks []pkgbuild.Task

	if len(c.Simple) > 0 {
		for _, lr := range recipes {
			for _, t := range c.Simple {
				target := pkgrecipe.BuildTarget(t)
				tasks = append(tasks, pkgbuild.Task{
					Recipe:    lr.recipe,
					RecipeDir: lr.dir,
					Image:     pkgrecipe.SimpleImageName(target),
					Target:    target,
					Simple:    true,
				})
			}
		}
		return tasks
	}

	wantImages := make(map[string]bool, len(c.Images))
	for _, img := range c.Images {
		wantImages[img] = true
	}

	for _, lr := range recipes {
		all := c.All || len(wantImages) == 0 || lr.recipe.Metadata.AllImages
		for _, img := range lr.recipe.Metadata.Images {
			if !all && !wantImages[img.Name] {
				continue
			}
			tasks = append(tasks, pkgbuild.Task{
				Recipe:    lr.recipe,
				RecipeDir: lr.dir,
				Image:     img.Name,
				Target:    img.Target,
				Simple:    img.Name == pkgrecipe.SimpleImageName(img.Target),
				OsHint:    img.Os,
			})
		}
	}
	return tasks
}

func failedCount(results []pkgbuild.Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// loadedRecipe pairs a parsed recipe with the host directory it was
// loaded from, needed to resolve recipe-relative patch paths.
type loadedRecipe struct {
	recipe *pkgrecipe.Recipe
	dir    string
}

// loadRecipes reads every recipe.yml/recipe.yaml under one subdirectory
// per recipe in dir, optionally filtered down to the named recipes.
func loadRecipes(dir string, names []string) ([]loadedRecipe, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	var out []loadedRecipe
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if len(want) > 0 && !want[e.Name()] {
			continue
		}

		recipeDir := filepath.Join(dir, e.Name())
		data, err := readRecipeFile(recipeDir)
		if err != nil {
			return nil, err
		}
		if data == nil {
			continue
		}

		r, err := pkgrecipe.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("recipe %s: %w", e.Name(), err)
		}
		out = append(out, loadedRecipe{recipe: r, dir: recipeDir})
	}
	return out, nil
}

func readRecipeFile(recipeDir string) ([]byte, error) {
	for _, name := range []string{"recipe.yml", "recipe.yaml"} {
		data, err := os.ReadFile(filepath.Join(recipeDir, name))
		if err == nil {
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	return nil, nil
}

// sessionID scopes this process's containers so an interrupted run's
// orphans can be reclaimed by a later PruneByLabel call.
func sessionID() string {
	var b [16]byte
	rand.Read(b[:])
	b[6] = b[6]&0x0f | 0x40 // version 4
	b[8] = b[8]&0x3f | 0x80 // RFC 4122 variant
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
}
