package cli

import (
	"context"

	"github.com/vortexlabs/measurectl/internal/builder"
	"github.com/vortexlabs/measurectl/internal/config"
	"github.com/vortexlabs/measurectl/internal/pipeline"
	"github.com/vortexlabs/measurectl/internal/runtime"
)

// Resolves the run configuration from the environment and global flags.
func loadConfig() config.Config {
	return config.Load(config.Overrides{
		EnvFile:      RootCmd.EnvFile,
		RemoteImage:  RootCmd.Image,
		LocalImage:   RootCmd.LocalImage,
		Platform:     RootCmd.Platform,
		InstanceName: RootCmd.Name,
		OutputPath:   RootCmd.Output,
		UniqueName:   RootCmd.UniqueName,
		Address:      RootCmd.ContainerdAddress,
		Namespace:    RootCmd.ContainerdNamespace,
	})
}

// Resolves and validates the configuration for a pipeline run.
//
// Validation also normalizes the platform string in place, so it must run
// before any collaborator takes a copy of the configuration: builder and
// pipeline would otherwise disagree on the platform they target.
func pipelineConfig() (config.Config, error) {
	cfg := loadConfig()
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// Wires the collaborators and executes a workflow.
//
// The containerd connection is only dialed for workflows that run an
// instance, and only after the configuration has been validated, so a
// configuration error aborts with zero side effects.
func runPipeline(ctx context.Context, workflow pipeline.Workflow) error {
	cfg, err := pipelineConfig()
	if err != nil {
		return err
	}

	b := builder.New(cfg)
	opts := pipeline.Options{
		Config:    cfg,
		Builder:   b,
		Publisher: b,
	}

	if workflow != pipeline.WorkflowBuild {
		rt, err := runtime.New(cfg.ContainerdAddress, cfg.ContainerdNamespace)
		if err != nil {
			return err
		}
		defer rt.Close()

		opts.Runner = containerdRunner{rt: rt}
	}

	_, err = pipeline.Run(ctx, workflow, opts)
	return err
}

// Adapts the containerd runtime to the pipeline's runner interface.
type containerdRunner struct {
	rt *runtime.Runtime
}

func (r containerdRunner) Start(ctx context.Context, ref, name, platform string) (pipeline.Instance, error) {
	ctr, err := r.rt.Start(ctx, ref, name, platform)
	if err != nil {
		return nil, err
	}
	return ctr, nil
}
