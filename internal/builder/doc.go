// Package builder drives the external docker toolchain.
//
// Images are built with "docker buildx build" for a pinned target platform
// and loaded into the local store; a separate push uploads the remote tag.
// The toolchain owns Dockerfile semantics, layer caching, and registry
// authentication; this package only assembles arguments, runs the process,
// and surfaces its diagnostics verbatim on failure.
//
// A layer cache is kept in an XDG cache directory so repeated builds of the
// same function reuse layers. The cache is discarded by Clean together with
// the builder's own prune.
package builder
