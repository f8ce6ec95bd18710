// Package pkgruntime is the Runtime Adapter (C1): a uniform container
// interface over Docker and Podman, both reached over
// github.com/docker/docker/client — Podman's own socket speaks a
// Docker-API-compatible dialect, so one client type drives both
// back-ends once the adapter has decided which socket to dial. Back-end
// selection pings Podman's socket first, then Docker's, falling back
// between /run/docker.sock and the legacy /var/run/docker.sock per the
// Open Question decision recorded in DESIGN.md.
//
// Every container this package creates carries the label
// "pkger.session=<uuid>" so [Runtime.PruneByLabel] can reclaim containers
// orphaned by an interrupted prior run.
package pkgruntime
