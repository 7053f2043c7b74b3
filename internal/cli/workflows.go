package cli

import (
	"context"

	"github.com/vortexlabs/measurectl/internal/builder"
	"github.com/vortexlabs/measurectl/internal/pipeline"
)

// Represents the 'measurectl build' command.
type BuildCmd struct{}

// Executes the build workflow: the image is built for the pinned platform
// and loaded into the local store. No network push happens.
func (c *BuildCmd) Run(ctx context.Context) error {
	return runPipeline(ctx, pipeline.WorkflowBuild)
}

// Represents the 'measurectl publish' command.
type PublishCmd struct{}

// Executes the publish workflow: build with the remote tag, push, then run
// the measurement workflow against the freshly pushed reference.
func (c *PublishCmd) Run(ctx context.Context) error {
	return runPipeline(ctx, pipeline.WorkflowPublish)
}

// Represents the 'measurectl measurement' command.
type MeasurementCmd struct{}

// Executes the measurement workflow against an already-published image.
func (c *MeasurementCmd) Run(ctx context.Context) error {
	return runPipeline(ctx, pipeline.WorkflowMeasurement)
}

// Represents the 'measurectl clean' command.
type CleanCmd struct{}

// Discards the external builder's cache and the local layer cache.
func (c *CleanCmd) Run(ctx context.Context) error {
	return builder.New(loadConfig()).Clean(ctx)
}
