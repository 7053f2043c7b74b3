package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/opencontainers/go-digest"
	"github.com/vortexlabs/measurectl/internal/config"
	"github.com/vortexlabs/measurectl/internal/paths"
)

// Label printed in front of the measurement value on success.
const measurementLabel = "MrEnclve"

// A workflow selects which stages a run executes.
type Workflow string

const (
	WorkflowBuild       Workflow = "build"       // Build the image locally.
	WorkflowPublish     Workflow = "publish"     // Build, push, then measure.
	WorkflowMeasurement Workflow = "measurement" // Measure an already-published image.
)

// An addressable image produced by the builder.
type Image struct {
	Reference string // Name:tag the image was built under.
	Platform  string // OCI platform the image was built for.
}

// The measurement extracted from a function instance.
type Measurement struct {
	Value  string // Encoded measurement text, whitespace-trimmed.
	Source string // In-container path the value was extracted from.
}

// Builds the function image. With forPush set, the image is tagged with the
// remote name so a subsequent push addresses the registry.
type Builder interface {
	Build(ctx context.Context, forPush bool) (Image, error)
}

// Pushes a built image to the remote registry.
type Publisher interface {
	Push(ctx context.Context, image Image) error
}

// Starts the ephemeral measurement instance.
type Runner interface {
	Start(ctx context.Context, ref, name, platform string) (Instance, error)
}

// A started measurement instance.
//
// Stop and Remove must be idempotent; the pipeline attempts both on every
// exit path after a successful start.
type Instance interface {
	Digest() digest.Digest
	ReadFile(ctx context.Context, path string) ([]byte, error)
	Stop(ctx context.Context) error
	Remove(ctx context.Context) error
}

// Controls a pipeline run.
type Options struct {
	Config    config.Config // Validated at the start of the run.
	Builder   Builder       // Required for build and publish workflows.
	Publisher Publisher     // Required for the publish workflow.
	Runner    Runner        // Required for publish and measurement workflows.
	Stdout    io.Writer     // Destination of the success line. Defaults to os.Stdout.
}

// Returned after a successful run.
type Result struct {
	Image       *Image       // Built image, when the workflow built one.
	Measurement *Measurement // Extracted measurement, when the workflow measured.
}

// Executes a workflow.
//
// The configuration is validated before any collaborator call; an invalid
// configuration aborts with zero side effects. Stages run strictly in
// sequence and the first failure aborts the rest, identified by the stage
// name in the returned error.
func Run(ctx context.Context, workflow Workflow, opts Options) (*Result, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}

	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	switch workflow {
	case WorkflowBuild:
		image, err := opts.Builder.Build(ctx, false)
		if err != nil {
			return nil, fmt.Errorf("build stage: %w", err)
		}
		return &Result{Image: &image}, nil

	case WorkflowPublish:
		image, err := opts.Builder.Build(ctx, true)
		if err != nil {
			return nil, fmt.Errorf("build stage: %w", err)
		}

		if err := opts.Publisher.Push(ctx, image); err != nil {
			return nil, fmt.Errorf("push stage: %w", err)
		}

		m, err := measure(ctx, opts)
		if err != nil {
			return nil, err
		}
		return &Result{Image: &image, Measurement: m}, nil

	case WorkflowMeasurement:
		m, err := measure(ctx, opts)
		if err != nil {
			return nil, err
		}
		return &Result{Measurement: m}, nil

	default:
		return nil, fmt.Errorf("%w: unknown workflow %q", config.ErrConfiguration, workflow)
	}
}

// Runs the measurement workflow against the configured remote reference.
//
// The instance is started from the registry-qualified image, the
// measurement file is copied out, and the instance is stopped and removed
// exactly once each regardless of the extraction outcome. The output file
// is only written after a verified successful copy.
func measure(ctx context.Context, opts Options) (_ *Measurement, err error) {
	cfg := opts.Config

	slog.Info("starting measurement instance",
		"image", cfg.RemoteImage,
		"name", cfg.InstanceName,
		"platform", cfg.Platform,
	)

	instance, err := opts.Runner.Start(ctx, cfg.RemoteImage, cfg.InstanceName, cfg.Platform)
	if err != nil {
		return nil, fmt.Errorf("measurement stage: %w", err)
	}

	defer func() {
		// Cleanup must still run when the surrounding context was
		// cancelled mid-extraction.
		cleanupCtx := context.WithoutCancel(ctx)

		if stopErr := instance.Stop(cleanupCtx); stopErr != nil {
			slog.Warn("failed to stop instance", "name", cfg.InstanceName, "error", stopErr)
		}
		if removeErr := instance.Remove(cleanupCtx); removeErr != nil {
			slog.Warn("failed to remove instance", "name", cfg.InstanceName, "error", removeErr)
		}
	}()

	data, err := instance.ReadFile(ctx, cfg.MeasurementPath)
	if err != nil {
		return nil, fmt.Errorf("measurement stage: %w", err)
	}

	value := strings.TrimSpace(string(data))
	if value == "" {
		return nil, fmt.Errorf("measurement stage: %w: %s is empty", ErrExtraction, cfg.MeasurementPath)
	}

	if err := os.WriteFile(cfg.OutputPath, data, paths.DefaultFileMode); err != nil {
		return nil, fmt.Errorf("measurement stage: %w: writing %s: %v", ErrExtraction, cfg.OutputPath, err)
	}

	slog.Debug("measurement extracted",
		"source", cfg.MeasurementPath,
		"output", cfg.OutputPath,
		"digest", instance.Digest(),
	)

	fmt.Fprintf(opts.Stdout, "%s: %s\n", measurementLabel, value)

	return &Measurement{Value: value, Source: cfg.MeasurementPath}, nil
}
