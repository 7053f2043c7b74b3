package builder

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync/atomic"

	"github.com/vortexlabs/measurectl/internal/config"
	"github.com/vortexlabs/measurectl/internal/paths"
	"github.com/vortexlabs/measurectl/internal/pipeline"
)

// Default docker binary name, resolved through PATH.
const defaultDocker = "docker"

// Builds and pushes function images via the docker CLI.
type Builder struct {
	docker   string        // Docker binary to invoke.
	cfg      config.Config // Run configuration, immutable.
	cacheDir string        // Local buildx layer cache directory.
	built    atomic.Bool   // Guards against a second build in the same run.
}

// Creates a builder for the given run configuration.
func New(cfg config.Config) *Builder {
	return &Builder{
		docker:   defaultDocker,
		cfg:      cfg,
		cacheDir: paths.BuildCache(),
	}
}

// Builds the function image for the configured platform.
//
// The image is tagged with the local name, or with the remote name when
// building for a later push, and loaded into the local store. Build may be
// called at most once per pipeline run; the image cache mutation it causes
// is not owned or rolled back by this tool.
func (b *Builder) Build(ctx context.Context, forPush bool) (pipeline.Image, error) {
	if !b.built.CompareAndSwap(false, true) {
		return pipeline.Image{}, fmt.Errorf("%w: image already built in this run", ErrBuild)
	}

	tag := b.cfg.LocalImage
	if forPush {
		tag = b.cfg.RemoteImage
	}

	args := b.buildArgs(tag)

	slog.Info("building image", "tag", tag, "platform", b.cfg.Platform)
	slog.Debug("invoking builder", "docker", b.docker, "args", args)

	if out, err := b.run(ctx, args...); err != nil {
		return pipeline.Image{}, fmt.Errorf("%w: %s", ErrBuild, diagnostic(out, err))
	}

	return pipeline.Image{Reference: tag, Platform: b.cfg.Platform}, nil
}

// Pushes a built image to the remote registry.
//
// Re-pushing the same tag overwrites the remote tag. A failed push leaves
// the remote state unspecified; the caller retries from scratch.
func (b *Builder) Push(ctx context.Context, image pipeline.Image) error {
	slog.Info("pushing image", "reference", image.Reference)

	if out, err := b.run(ctx, "push", image.Reference); err != nil {
		return fmt.Errorf("%w: %s", ErrPush, diagnostic(out, err))
	}

	return nil
}

// Discards the toolchain's build cache and the local layer cache directory.
func (b *Builder) Clean(ctx context.Context) error {
	slog.Info("pruning build caches", "cache", b.cacheDir)

	if out, err := b.run(ctx, "buildx", "prune", "--force"); err != nil {
		return fmt.Errorf("%w: %s", ErrClean, diagnostic(out, err))
	}

	if err := os.RemoveAll(b.cacheDir); err != nil {
		return fmt.Errorf("%w: %v", ErrClean, err)
	}

	return nil
}

// Assembles the buildx argument list for a tagged, platform-pinned build.
func (b *Builder) buildArgs(tag string) []string {
	args := []string{
		"buildx", "build",
		"--platform", b.cfg.Platform,
		"-f", b.cfg.Dockerfile,
		"-t", tag,
	}

	if b.cacheDir != "" {
		args = append(args,
			"--cache-from", "type=local,src="+b.cacheDir,
			"--cache-to", "type=local,dest="+b.cacheDir+",mode=max",
		)
	}

	args = append(args, "--load")

	return append(args, b.cfg.Context)
}

// Runs the docker binary with the given arguments, capturing combined output.
func (b *Builder) run(ctx context.Context, args ...string) (string, error) {
	if b.cacheDir != "" {
		if err := os.MkdirAll(b.cacheDir, paths.DefaultDirMode); err != nil {
			return "", err
		}
	}

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, b.docker, args...)
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	if err != nil {
		return out.String(), err
	}

	slog.Debug("toolchain output", "output", strings.TrimSpace(out.String()))
	return out.String(), nil
}

// Formats a toolchain failure, preferring its own output over the exec error.
func diagnostic(out string, err error) string {
	if trimmed := strings.TrimSpace(out); trimmed != "" {
		return trimmed
	}
	return err.Error()
}
