package pkgruntime

import (
	"bytes"
	"context"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/pkgerio/pkger/internal/pkgerr"
)

// ExecOptions carries everything a single in-container command needs.
type ExecOptions struct {
	Cmd        string
	Shell      string // defaults to "/bin/sh"
	Tty        bool
	Privileged bool
	User       string
	WorkingDir string
	Env        []string
}

// ExecResult is the outcome of running a command inside a container.
type ExecResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Exec runs a command inside the container. The command is always
// wrapped as [shell, "-c", cmd] per §4.1.
func (c *Container) Exec(ctx context.Context, opts ExecOptions) (*ExecResult, error) {
	shell := opts.Shell
	if shell == "" {
		shell = "/bin/sh"
	}

	execCfg := container.ExecOptions{
		Cmd:          []string{shell, "-c", opts.Cmd},
		AttachStdout: true,
		AttachStderr: true,
		Tty:          opts.Tty,
		Privileged:   opts.Privileged,
		User:         opts.User,
		WorkingDir:   opts.WorkingDir,
		Env:          opts.Env,
	}

	created, err := c.cli.ContainerExecCreate(ctx, c.id, execCfg)
	if err != nil {
		return nil, pkgerr.Wrap(ErrRuntime, err)
	}

	attached, err := c.cli.ContainerExecAttach(ctx, created.ID, container.ExecAttachOptions{Tty: opts.Tty})
	if err != nil {
		return nil, pkgerr.Wrap(ErrRuntime, err)
	}
	defer attached.Close()

	var stdout, stderr bytes.Buffer
	if opts.Tty {
		// A tty multiplexes stdout and stderr onto the same stream.
		if _, err := stdout.ReadFrom(attached.Reader); err != nil {
			return nil, pkgerr.Wrap(ErrRuntime, err)
		}
	} else {
		if _, err := stdcopy.StdCopy(&stdout, &stderr, attached.Reader); err != nil {
			return nil, pkgerr.Wrap(ErrRuntime, err)
		}
	}

	inspect, err := c.cli.ContainerExecInspect(ctx, created.ID)
	if err != nil {
		return nil, pkgerr.Wrap(ErrRuntime, err)
	}

	return &ExecResult{
		ExitCode: inspect.ExitCode,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}, nil
}

// CheckedExec runs opts and fails with a [CommandFailedError] when the
// process exits nonzero.
func (c *Container) CheckedExec(ctx context.Context, opts ExecOptions) (*ExecResult, error) {
	result, err := c.Exec(ctx, opts)
	if err != nil {
		return nil, err
	}
	if result.ExitCode != 0 {
		return result, &CommandFailedError{ExitCode: result.ExitCode, Stderr: result.Stderr}
	}
	return result, nil
}
