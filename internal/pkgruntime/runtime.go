package pkgruntime

import (
	"context"
	"log/slog"
	"time"

	"github.com/docker/docker/client"
	"github.com/pkgerio/pkger/internal/pkgerr"
)

// Backend identifies which container engine a Runtime is actually
// talking to, for logging and for Podman/Docker-specific quirks (there
// are none left to speak of once both engines answer the same API, but
// the label is useful in diagnostics).
type Backend string

const (
	BackendDocker Backend = "docker"
	BackendPodman Backend = "podman"
)

// candidate is one socket this adapter is willing to probe, in probe order.
type candidate struct {
	backend Backend
	uri     string
}

// defaultCandidates returns the probe order: Podman first, then Docker,
// then Docker's legacy socket path, per §4.1 and the Open Question
// decision to probe both /run/docker.sock and /var/run/docker.sock.
func defaultCandidates() []candidate {
	return []candidate{
		{BackendPodman, "unix:///run/podman/podman.sock"},
		{BackendDocker, "unix:///run/docker.sock"},
		{BackendDocker, "unix:///var/run/docker.sock"},
	}
}

// Runtime manages a connection to a Docker or Podman engine and provides
// image and container operations.
type Runtime struct {
	cli     *client.Client
	backend Backend
	session string // pkger.session label value stamped on every container
}

// New probes the configured URI (or the default candidate list) and
// returns a Runtime bound to whichever engine answers /_ping first.
//
// session scopes every container this Runtime creates with a
// "pkger.session" label, letting PruneByLabel reclaim orphans from a
// prior interrupted run.
func New(ctx context.Context, uri, session string) (*Runtime, error) {
	candidates := defaultCandidates()
	if uri != "" {
		candidates = []candidate{{BackendDocker, uri}}
	}

	var lastErr error
	for _, c := range candidates {
		cli, err := client.NewClientWithOpts(
			client.WithHost(c.uri),
			client.WithAPIVersionNegotiation(),
		)
		if err != nil {
			lastErr = err
			continue
		}

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		_, err = cli.Ping(pingCtx)
		cancel()
		if err != nil {
			lastErr = err
			cli.Close()
			continue
		}

		slog.Debug("container runtime selected", "backend", c.backend, "uri", c.uri)
		return &Runtime{cli: cli, backend: c.backend, session: session}, nil
	}

	return nil, pkgerr.Wrap(ErrNoBackend, lastErr)
}

// Backend reports which engine this Runtime is connected to.
func (rt *Runtime) Backend() Backend {
	return rt.backend
}

// Close releases the underlying client connection.
func (rt *Runtime) Close() error {
	return rt.cli.Close()
}

// SessionLabel returns the "pkger.session" label value stamped on every
// container this Runtime creates.
func (rt *Runtime) SessionLabel() string {
	return rt.session
}
