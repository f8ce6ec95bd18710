package pkgbuild

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkgerio/pkger/internal/pkgerr"
	"github.com/pkgerio/pkger/internal/pkgfetch"
	"github.com/pkgerio/pkger/internal/pkgimage"
	"github.com/pkgerio/pkger/internal/pkgpackage"
	"github.com/pkgerio/pkger/internal/pkgpackage/apk"
	"github.com/pkgerio/pkger/internal/pkgpackage/deb"
	"github.com/pkgerio/pkger/internal/pkgpackage/gzip"
	"github.com/pkgerio/pkger/internal/pkgpackage/pacman"
	"github.com/pkgerio/pkger/internal/pkgpackage/rpm"
	"github.com/pkgerio/pkger/internal/pkgrecipe"
	"github.com/pkgerio/pkger/internal/pkgruntime"
	"github.com/pkgerio/pkger/internal/pkgscript"
	"github.com/pkgerio/pkger/internal/pkgsign"
)

const (
	containerBuildDir = "/pkger/build"
	containerOutDir   = "/pkger/out"
	containerTmpDir   = "/pkger/tmp"
)

// Orchestrator carries a single Task through these stages: BuildImage
// (the Image Builder readies both <image>:latest and <image>:cached),
// CreateOutDir, SpawnContainer on <image>:cached, MakeDirs, FetchSource,
// ApplyPatches when the recipe declares any, RunScripts, ExcludePaths,
// Package, RemoveContainer. The cached image exists before the container
// is spawned, so each task spawns exactly one container and never
// respawns it.
//
// One Orchestrator instance is reused across every Task the Job
// Supervisor hands it; none of its fields are mutated after
// construction, so it is safe to call Run concurrently for distinct
// tasks.
type Orchestrator struct {
	rt            *pkgruntime.Runtime
	builder       *pkgimage.Builder
	imagesDir     string // host directory holding <image-name>/Dockerfile
	outputDir     string // host directory finished artifacts are written under
	key           *pkgsign.Key
	cancel        *Cancel
	strictPatches bool
}

// New returns an Orchestrator bound to a shared runtime connection,
// image cache, and cancellation handle.
func New(rt *pkgruntime.Runtime, builder *pkgimage.Builder, imagesDir, outputDir string, key *pkgsign.Key, cancel *Cancel, strictPatches bool) *Orchestrator {
	return &Orchestrator{
		rt:            rt,
		builder:       builder,
		imagesDir:     imagesDir,
		outputDir:     outputDir,
		key:           key,
		cancel:        cancel,
		strictPatches: strictPatches,
	}
}

// Run carries task through to a finished artifact or a failure,
// checking the cancellation handle at every stage boundary named in
// §4.9. The container this task spawns is always removed before
// returning, success or failure.
func (o *Orchestrator) Run(ctx context.Context, task Task) Result {
	path, err := o.run(ctx, task)
	return Result{Task: task, ArtifactPath: path, Err: err}
}

func (o *Orchestrator) run(ctx context.Context, task Task) (string, error) {
	if o.cancel.Cancelled() {
		return "", ErrCancelled
	}

	key := pkgrecipe.RecipeTarget{Recipe: task.Recipe.Metadata.Name, Image: task.Image, Target: task.Target}
	deps := pkgrecipe.ResolveDeps(task.Recipe, task.Image, task.Target, o.key != nil)

	src := pkgimage.Source{DockerfileDir: filepath.Join(o.imagesDir, task.Image)}
	if task.Simple {
		simple, ok := pkgimage.Simple(task.Target)
		if !ok {
			return "", pkgerr.Wrapf(ErrBuild, "no default image for target %s", task.Target)
		}
		src = pkgimage.Source{PullRef: simple.BaseImage}
	}

	prepared, err := o.builder.Prepare(ctx, key, src, deps, task.Simple, o.key != nil)
	if err != nil {
		return "", pkgerr.Wrap(ErrBuild, err)
	}
	if task.OsHint != nil {
		prepared.Os = *task.OsHint
	}

	if o.cancel.Cancelled() {
		return "", ErrCancelled
	}

	hostOutDir := filepath.Join(o.outputDir, task.Image)
	if err := os.MkdirAll(hostOutDir, 0755); err != nil {
		return "", pkgerr.Wrap(ErrBuild, err)
	}

	if o.cancel.Cancelled() {
		return "", ErrCancelled
	}

	vars := envVars(task.Recipe, prepared.Os)
	container, err := o.rt.CreateContainer(ctx, pkgruntime.CreateOptions{
		Image:   key.Image + ":cached",
		Name:    fmt.Sprintf("pkger-%s-%s-%d", task.Recipe.Metadata.Name, task.Image, time.Now().UnixNano()),
		Command: []string{"sleep", "infinity"},
		Env:     vars.EnvList(),
	})
	if err != nil {
		return "", pkgerr.Wrap(ErrBuild, err)
	}
	defer container.Remove(ctx)

	if err := container.Start(ctx); err != nil {
		return "", pkgerr.Wrap(ErrBuild, err)
	}

	if o.cancel.Cancelled() {
		return "", ErrCancelled
	}

	if _, err := container.CheckedExec(ctx, pkgruntime.ExecOptions{
		Cmd: fmt.Sprintf("mkdir -p %s %s %s", containerBuildDir, containerOutDir, containerTmpDir),
	}); err != nil {
		return "", pkgerr.Wrap(ErrBuild, err)
	}

	if err := pkgfetch.Fetch(ctx, container, task.Recipe, containerBuildDir); err != nil {
		return "", pkgerr.Wrap(ErrBuild, err)
	}

	if o.cancel.Cancelled() {
		return "", ErrCancelled
	}

	if len(task.Recipe.Metadata.Patches) > 0 {
		if err := pkgfetch.ApplyPatches(ctx, container, task.Recipe.Metadata.Patches, task.Image, task.RecipeDir, containerBuildDir, o.strictPatches); err != nil {
			return "", pkgerr.Wrap(ErrBuild, err)
		}
	}

	if o.cancel.Cancelled() {
		return "", ErrCancelled
	}

	phases := []struct {
		script *pkgrecipe.Script
		phase  pkgscript.Phase
	}{
		{task.Recipe.Configure, pkgscript.PhaseConfigure},
		{task.Recipe.Build, pkgscript.PhaseBuild},
		{task.Recipe.Install, pkgscript.PhaseInstall},
	}
	for _, p := range phases {
		if err := pkgscript.Run(ctx, container, p.script, p.phase, task.Image, task.Target, containerBuildDir, containerOutDir, vars); err != nil {
			return "", pkgerr.Wrap(ErrBuild, err)
		}
		if o.cancel.Cancelled() {
			return "", ErrCancelled
		}
	}

	if err := excludePaths(ctx, container, task.Recipe.Metadata.ExcludePaths); err != nil {
		return "", pkgerr.Wrap(ErrBuild, err)
	}

	if o.cancel.Cancelled() {
		return "", ErrCancelled
	}

	in := &pkgpackage.Input{
		Container:       container,
		Recipe:          task.Recipe,
		Image:           task.Image,
		Os:              prepared.Os,
		ContainerOutDir: containerOutDir,
		Deps:            deps,
		Key:             o.key,
		HostOutputDir:   hostOutDir,
	}

	return packageFor(ctx, task.Target, in)
}

// excludePaths removes the recipe's declared exclude globs from the
// container's out dir before packaging picks it up.
func excludePaths(ctx context.Context, c *pkgruntime.Container, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	cmd := "rm -rf"
	for _, p := range paths {
		cmd += " " + filepath.Join(containerOutDir, p)
	}
	_, err := c.CheckedExec(ctx, pkgruntime.ExecOptions{Cmd: cmd, WorkingDir: containerOutDir})
	return err
}

// packageFor dispatches to the per-target Packager implementation.
func packageFor(ctx context.Context, target pkgrecipe.BuildTarget, in *pkgpackage.Input) (string, error) {
	switch target {
	case pkgrecipe.Rpm:
		return rpm.Build(ctx, in)
	case pkgrecipe.Deb:
		return deb.Build(ctx, in)
	case pkgrecipe.Pkg:
		return pacman.Build(ctx, in)
	case pkgrecipe.Apk:
		return apk.Build(ctx, in)
	case pkgrecipe.Gzip:
		return gzip.Build(ctx, in)
	default:
		return "", pkgerr.Wrapf(ErrBuild, "unknown target %s", target)
	}
}

// envVars builds the variable set every script step and container exec
// sees: the recipe's own env block plus the fixed PKGER_* identifiers
// the build is running under.
func envVars(r *pkgrecipe.Recipe, target pkgrecipe.Os) pkgscript.Vars {
	vars := make(pkgscript.Vars, len(r.Env)+6)
	for k, v := range r.Env {
		vars[k] = v
	}
	vars["PKGER_BLD_DIR"] = containerBuildDir
	vars["PKGER_OUT_DIR"] = containerOutDir
	vars["PKGER_OS"] = target.Distribution
	vars["PKGER_OS_VERSION"] = target.Version
	vars["RECIPE"] = r.Metadata.Name
	vars["RECIPE_VERSION"] = r.Metadata.Version
	vars["RECIPE_RELEASE"] = r.Metadata.Release
	return vars
}
