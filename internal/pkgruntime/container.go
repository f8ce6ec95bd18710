package pkgruntime

import (
	"context"
	"regexp"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"
	"github.com/pkgerio/pkger/internal/pkgerr"
)

// sessionLabelKey is stamped on every container this adapter creates so
// PruneByLabel can reclaim orphans from an interrupted prior run.
const sessionLabelKey = "pkger.session"

var invalidNameChars = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)

// SanitizeName replaces each character the runtime's create payload
// disallows in a container name with '-'.
func SanitizeName(name string) string {
	return invalidNameChars.ReplaceAllString(name, "-")
}

// CreateOptions carries everything a build container needs at creation.
type CreateOptions struct {
	Image      string
	Name       string
	Command    []string
	Entrypoint []string
	Labels     map[string]string
	Volumes    map[string]string // host path -> container path
	Env        []string
	WorkingDir string
}

// Container is a running (or createable) container on the adapter's
// selected back-end.
type Container struct {
	cli *client.Client
	id  string
}

// CreateContainer creates (but does not start) a container from opts.
func (rt *Runtime) CreateContainer(ctx context.Context, opts CreateOptions) (*Container, error) {
	labels := make(map[string]string, len(opts.Labels)+1)
	for k, v := range opts.Labels {
		labels[k] = v
	}
	labels[sessionLabelKey] = rt.session

	var binds []string
	for host, dst := range opts.Volumes {
		binds = append(binds, host+":"+dst)
	}

	cfg := &container.Config{
		Image:      opts.Image,
		Cmd:        opts.Command,
		Entrypoint: opts.Entrypoint,
		Env:        opts.Env,
		WorkingDir: opts.WorkingDir,
		Labels:     labels,
		Tty:        false,
	}
	hostCfg := &container.HostConfig{
		Binds: binds,
	}

	resp, err := rt.cli.ContainerCreate(ctx, cfg, hostCfg, nil, nil, SanitizeName(opts.Name))
	if err != nil {
		return nil, pkgerr.Wrap(ErrRuntime, err)
	}

	return &Container{cli: rt.cli, id: resp.ID}, nil
}

// Container returns a lightweight handle for an existing container id.
func (rt *Runtime) Container(id string) *Container {
	return &Container{cli: rt.cli, id: id}
}

// ID returns the container's engine-assigned id.
func (c *Container) ID() string {
	return c.id
}

// Start starts a created container.
func (c *Container) Start(ctx context.Context) error {
	if err := c.cli.ContainerStart(ctx, c.id, container.StartOptions{}); err != nil {
		return pkgerr.Wrap(ErrRuntime, err)
	}
	return nil
}

// State is the container's reported lifecycle state.
type State string

const (
	StateRunning     State = "running"
	StateStopped     State = "stopped"
	StateNotCreated  State = "not-created"
)

// Status queries the current state of the container.
func (c *Container) Status(ctx context.Context) (State, error) {
	info, err := c.cli.ContainerInspect(ctx, c.id)
	if err != nil {
		if client.IsErrNotFound(err) {
			return StateNotCreated, nil
		}
		return "", pkgerr.Wrap(ErrRuntime, err)
	}
	if info.State != nil && info.State.Running {
		return StateRunning, nil
	}
	return StateStopped, nil
}

// Stop stops the container's running process. Stopping an already
// stopped container is not an error.
func (c *Container) Stop(ctx context.Context) error {
	if err := c.cli.ContainerStop(ctx, c.id, container.StopOptions{}); err != nil {
		if client.IsErrNotFound(err) {
			return nil
		}
		return pkgerr.Wrap(ErrRuntime, err)
	}
	return nil
}

// Remove force-removes the container and its anonymous volumes. Every
// container that reaches [Runtime.CreateContainer] must reach Remove on
// every terminal or error path.
func (c *Container) Remove(ctx context.Context) error {
	err := c.cli.ContainerRemove(ctx, c.id, container.RemoveOptions{
		Force:         true,
		RemoveVolumes: true,
	})
	if err != nil && !client.IsErrNotFound(err) {
		return pkgerr.Wrap(ErrRuntime, err)
	}
	return nil
}

// PruneByLabel removes stopped containers bearing the label key=value.
// Nothing in this module calls it: the Job Supervisor does not prune
// orphans left by earlier interrupted runs.
func (rt *Runtime) PruneByLabel(ctx context.Context, key, value string) error {
	args := filters.NewArgs(filters.Arg("label", key+"="+value))
	_, err := rt.cli.ContainersPrune(ctx, args)
	if err != nil {
		return pkgerr.Wrap(ErrRuntime, err)
	}
	return nil
}
