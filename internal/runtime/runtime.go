package runtime

import (
	"context"
	"fmt"
	"log/slog"

	containerd "github.com/containerd/containerd/v2/client"
	"github.com/containerd/errdefs"
	"github.com/containerd/platforms"
	"github.com/distribution/reference"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

const (

	// Snapshotter used for container filesystems. fuse-overlayfs provides
	// overlay semantics without requiring root privileges (no mount(2)),
	// allowing measurectl to run as a regular user.
	snapshotter = "fuse-overlayfs"

	// OCI runtime shim for running containers.
	ociRuntime = "io.containerd.runc.v2"
)

// Manages the containerd client and provides the measurement instance
// lifecycle.
type Runtime struct {
	client *containerd.Client // Containerd client for managing containers and images.
}

// Creates a runtime connected to the containerd socket at the given address.
//
// The namespace scopes all containerd operations to this tool. The runtime
// must be closed when no longer needed.
func New(address, namespace string) (*Runtime, error) {
	client, err := containerd.New(address, containerd.WithDefaultNamespace(namespace))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRuntime, err)
	}
	return &Runtime{client: client}, nil
}

// Closes the containerd client connection.
func (rt *Runtime) Close() error {
	return rt.client.Close()
}

// Starts a detached instance from a registry-qualified image reference.
//
// The reference is normalized (registry host and tag defaulted), pulled,
// and unpacked for the pinned platform. A name already in use is an error;
// the existing instance is left untouched rather than silently reused. The
// returned container has a running holding task, confirmed before Start
// returns, so files can be extracted from its filesystem.
func (rt *Runtime) Start(ctx context.Context, ref, id, platform string) (*Container, error) {
	normalized, err := normalizeRef(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid image reference %q: %v", ErrRuntime, ref, err)
	}

	p, err := parsePlatform(platform)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid platform %q: %v", ErrRuntime, platform, err)
	}

	if err := rt.checkNameFree(ctx, id); err != nil {
		return nil, err
	}

	image, err := rt.pull(ctx, normalized, p)
	if err != nil {
		return nil, fmt.Errorf("%w: pulling %s: %v", ErrRuntime, normalized, err)
	}

	c := &Container{
		client:      rt.client,
		id:          id,
		platform:    platforms.Format(p),
		imageDigest: image.Target().Digest,
	}

	ctr, err := c.create(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRuntime, err)
	}

	if err := c.startTask(ctx, ctr); err != nil {
		ctr.Delete(context.WithoutCancel(ctx), containerd.WithSnapshotCleanup)
		return nil, fmt.Errorf("%w: %w", ErrRuntime, err)
	}

	// The runtime must report the instance as running before any
	// extraction is attempted. An instance that failed to come up is
	// torn down here; the caller only owns cleanup after a successful
	// start. Teardown runs on a detached context so a cancelled caller
	// still releases the container.
	state, err := c.Status(ctx)
	if err != nil || state != StateRunning {
		cleanupCtx := context.WithoutCancel(ctx)
		c.Stop(cleanupCtx)
		c.Remove(cleanupCtx)
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: instance %q reached state %q instead of running", ErrRuntime, id, state)
	}

	slog.Debug("instance started", "id", id, "image", normalized, "digest", c.imageDigest)

	return c, nil
}

// Fails when a container already exists under the given name.
func (rt *Runtime) checkNameFree(ctx context.Context, id string) error {
	_, err := rt.client.LoadContainer(ctx, id)
	if err == nil {
		return fmt.Errorf("%w: instance name %q already in use", ErrRuntime, id)
	}
	if !errdefs.IsNotFound(err) {
		return fmt.Errorf("%w: %w", ErrRuntime, err)
	}
	return nil
}

// Pulls the image and unpacks its layers for the target platform into the
// snapshotter.
func (rt *Runtime) pull(ctx context.Context, ref string, p ocispec.Platform) (containerd.Image, error) {
	return rt.client.Pull(ctx, ref,
		containerd.WithPlatformMatcher(platforms.Only(p)),
		containerd.WithPullUnpack,
		containerd.WithPullSnapshotter(snapshotter),
	)
}

// Normalizes an image reference to its fully qualified form.
//
// Short references are expanded the way docker expands them: a missing
// registry host becomes docker.io (with the library/ prefix for single-name
// repositories) and a missing tag becomes :latest.
func normalizeRef(ref string) (string, error) {
	named, err := reference.ParseDockerRef(ref)
	if err != nil {
		return "", err
	}
	return named.String(), nil
}

// Parses and normalizes an OCI platform string.
func parsePlatform(platform string) (ocispec.Platform, error) {
	return platforms.Parse(platform)
}
