// Package pipeline sequences the measurement workflows.
//
// A workflow is an ordered sequence of stage calls against the builder,
// publisher, and runner collaborators: build the image, optionally push it,
// start the ephemeral instance, extract the measurement file, and always
// stop and remove the instance before the run concludes. The first failing
// stage aborts the remaining stages; cleanup of a started instance is the
// one step that runs on every exit path, including extraction failure and
// interruption.
//
// Collaborators are consumed through narrow interfaces so the sequencing
// and cleanup properties can be verified against fakes.
//
// Example usage:
//
//	result, err := pipeline.Run(ctx, pipeline.WorkflowMeasurement, pipeline.Options{
//	    Config:  cfg,
//	    Builder: b,
//	    Runner:  r,
//	})
//	if err != nil {
//	    return err
//	}
package pipeline
