// Package pkgbuild implements the Build Orchestrator (C13) — the
// per-job state machine that carries one recipe/image/target build
// from image preparation through to a signed artifact on disk — and the
// Job Supervisor (C14), which fans a batch of such jobs out concurrently
// against a shared runtime connection and image-state cache.
package pkgbuild
