package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkgerio/pkger/internal/pkgbuild"
	"github.com/pkgerio/pkger/internal/pkgrecipe"
)

func TestResolveTasksSimpleIgnoresRecipeImages(t *testing.T) {
	c := &BuildCmd{Simple: []string{"deb", "rpm"}}
	recipes := []loadedRecipe{
		{recipe: &pkgrecipe.Recipe{Metadata: pkgrecipe.Metadata{
			Name:   "hello",
			Images: []pkgrecipe.Image{{Name: "debian12", Target: pkgrecipe.Deb}},
		}}, dir: "/recipes/hello"},
	}

	tasks := c.resolveTasks(recipes)
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2: %+v", len(tasks), tasks)
	}
	for _, task := range tasks {
		if !task.Simple {
			t.Fatalf("task %+v should be Simple", task)
		}
		if task.Image != pkgrecipe.SimpleImageName(task.Target) {
			t.Fatalf("task image = %q, want simple image name for %v", task.Image, task.Target)
		}
	}
}

func TestResolveTasksDefaultBuildsEveryDeclaredImage(t *testing.T) {
	c := &BuildCmd{}
	recipes := []loadedRecipe{
		{recipe: &pkgrecipe.Recipe{Metadata: pkgrecipe.Metadata{
			Name: "hello",
			Images: []pkgrecipe.Image{
				{Name: "debian12", Target: pkgrecipe.Deb},
				{Name: "centos8", Target: pkgrecipe.Rpm},
			},
		}}, dir: "/recipes/hello"},
	}

	tasks := c.resolveTasks(recipes)
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
}

func TestResolveTasksImagesFlagRestrictsSelection(t *testing.T) {
	c := &BuildCmd{Images: []string{"debian12"}}
	recipes := []loadedRecipe{
		{recipe: &pkgrecipe.Recipe{Metadata: pkgrecipe.Metadata{
			Name: "hello",
			Images: []pkgrecipe.Image{
				{Name: "debian12", Target: pkgrecipe.Deb},
				{Name: "centos8", Target: pkgrecipe.Rpm},
			},
		}}, dir: "/recipes/hello"},
	}

	tasks := c.resolveTasks(recipes)
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1: %+v", len(tasks), tasks)
	}
	if tasks[0].Image != "debian12" {
		t.Fatalf("task image = %q, want debian12", tasks[0].Image)
	}
}

func TestResolveTasksAllFlagOverridesImages(t *testing.T) {
	c := &BuildCmd{Images: []string{"debian12"}, All: true}
	recipes := []loadedRecipe{
		{recipe: &pkgrecipe.Recipe{Metadata: pkgrecipe.Metadata{
			Name: "hello",
			Images: []pkgrecipe.Image{
				{Name: "debian12", Target: pkgrecipe.Deb},
				{Name: "centos8", Target: pkgrecipe.Rpm},
			},
		}}, dir: "/recipes/hello"},
	}

	tasks := c.resolveTasks(recipes)
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2 when --all is set", len(tasks))
	}
}

func TestResolveTasksAllImagesMetadataOverridesImages(t *testing.T) {
	c := &BuildCmd{Images: []string{"debian12"}}
	recipes := []loadedRecipe{
		{recipe: &pkgrecipe.Recipe{Metadata: pkgrecipe.Metadata{
			Name:      "hello",
			AllImages: true,
			Images: []pkgrecipe.Image{
				{Name: "debian12", Target: pkgrecipe.Deb},
				{Name: "centos8", Target: pkgrecipe.Rpm},
			},
		}}, dir: "/recipes/hello"},
	}

	tasks := c.resolveTasks(recipes)
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2 when metadata.all_images is set", len(tasks))
	}
}

func TestFailedCount(t *testing.T) {
	results := []pkgbuild.Result{{}, {Err: pkgbuild.ErrBuild}, {Err: pkgbuild.ErrBuild}}
	if got := failedCount(results); got != 2 {
		t.Fatalf("failedCount = %d, want 2", got)
	}
}

func TestLoadRecipesReadsEachSubdirectory(t *testing.T) {
	dir := t.TempDir()
	mustWriteRecipe(t, filepath.Join(dir, "hello"), "metadata:\n  name: hello\n  version: 1.0.0\n")
	mustWriteRecipe(t, filepath.Join(dir, "world"), "metadata:\n  name: world\n  version: 2.0.0\n")

	recipes, err := loadRecipes(dir, nil)
	if err != nil {
		t.Fatalf("loadRecipes: %v", err)
	}
	if len(recipes) != 2 {
		t.Fatalf("got %d recipes, want 2", len(recipes))
	}
}

func TestLoadRecipesFiltersByName(t *testing.T) {
	dir := t.TempDir()
	mustWriteRecipe(t, filepath.Join(dir, "hello"), "metadata:\n  name: hello\n  version: 1.0.0\n")
	mustWriteRecipe(t, filepath.Join(dir, "world"), "metadata:\n  name: world\n  version: 2.0.0\n")

	recipes, err := loadRecipes(dir, []string{"hello"})
	if err != nil {
		t.Fatalf("loadRecipes: %v", err)
	}
	if len(recipes) != 1 || recipes[0].recipe.Metadata.Name != "hello" {
		t.Fatalf("loadRecipes with filter = %+v", recipes)
	}
}

func TestLoadRecipesMissingDirYieldsNoRecipes(t *testing.T) {
	recipes, err := loadRecipes(filepath.Join(t.TempDir(), "missing"), nil)
	if err != nil {
		t.Fatalf("loadRecipes: %v", err)
	}
	if len(recipes) != 0 {
		t.Fatalf("got %d recipes, want 0", len(recipes))
	}
}

func mustWriteRecipe(t *testing.T, dir, yaml string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "recipe.yml"), []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}
}
