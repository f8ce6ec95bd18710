package pkgscript

import (
	"context"
	"errors"

	"github.com/pkgerio/pkger/internal/pkgerr"
	"github.com/pkgerio/pkger/internal/pkgrecipe"
	"github.com/pkgerio/pkger/internal/pkgruntime"
)

var ErrScript = errors.New("script error")

// Phase identifies which of the recipe's three script blocks is
// running, to pick its default working directory.
type Phase int

const (
	PhaseConfigure Phase = iota
	PhaseBuild
	PhaseInstall
)

// Run walks script in order, skipping any step whose image or target
// filters exclude the current build, and checked-execs the rest.
func Run(ctx context.Context, c *pkgruntime.Container, script *pkgrecipe.Script, phase Phase, image string, target pkgrecipe.BuildTarget, buildDir, outDir string, vars Vars) error {
	if script == nil {
		return nil
	}

	defaultDir := buildDir
	if phase == PhaseInstall {
		defaultDir = outDir
	}

	workingDir := script.WorkingDir
	if workingDir == "" {
		workingDir = defaultDir
	}

	shell := script.Shell
	if shell == "" {
		shell = "/bin/sh"
	}

	for _, step := range script.Steps {
		if !step.RunsOnImage(image) || !step.RunsOn(target) {
			continue
		}

		stepDir := workingDir
		cmd := vars.Expand(step.Cmd)
		stepDir = vars.Expand(stepDir)

		if _, err := c.CheckedExec(ctx, pkgruntime.ExecOptions{
			Cmd:        cmd,
			Shell:      shell,
			WorkingDir: stepDir,
		}); err != nil {
			return pkgerr.Wrapf(ErrScript, "step %q: %v", step.Cmd, err)
		}
	}

	return nil
}
