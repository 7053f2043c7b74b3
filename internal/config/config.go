package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/containerd/platforms"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Environment variable names recognized by Load.
const (
	EnvRemoteImage         = "DOCKER_IMAGE_NAME"
	EnvLocalImage          = "LOCAL_IMAGE_NAME"
	EnvPlatform            = "DOCKER_PLATFORM"
	EnvDockerfile          = "DOCKERFILE"
	EnvBuildContext        = "BUILD_CONTEXT"
	EnvMeasurementPath     = "MEASUREMENT_PATH"
	EnvContainerdAddress   = "CONTAINERD_ADDRESS"
	EnvContainerdNamespace = "CONTAINERD_NAMESPACE"
)

// Built-in defaults.
const (
	defaultDockerfile      = "Dockerfile"
	defaultBuildContext    = "."
	defaultPlatform        = "linux/amd64"
	defaultInstanceName    = "measure-function"
	defaultMeasurementPath = "/measurement.txt"
	defaultOutputPath      = "measurement.txt"
	defaultAddress         = "/run/containerd/containerd.sock"
	defaultNamespace       = "measurectl"
)

// Immutable settings for a single pipeline run.
type Config struct {
	Dockerfile          string // Path to the Dockerfile.
	Context             string // Build context directory.
	Platform            string // Normalized OCI platform (e.g., "linux/amd64").
	LocalImage          string // Tag for local-only builds.
	RemoteImage         string // Registry-qualified image name. Required.
	InstanceName        string // Name of the ephemeral measurement instance.
	MeasurementPath     string // In-container path of the measurement file.
	OutputPath          string // Host path the measurement is written to.
	ContainerdAddress   string // Containerd socket address.
	ContainerdNamespace string // Containerd namespace.
}

// Command-line overrides applied on top of the environment.
//
// Zero values leave the corresponding setting untouched.
type Overrides struct {
	EnvFile      string // Optional env file; skipped when absent.
	RemoteImage  string
	LocalImage   string
	Platform     string
	InstanceName string
	OutputPath   string
	UniqueName   bool // Append a random suffix to the instance name.
	Address      string
	Namespace    string
}

// Resolves the run configuration.
//
// Precedence, lowest to highest: built-in defaults, env file, process
// environment, overrides. The returned config is complete but not yet
// validated; call [Config.Validate] before issuing any external call.
func Load(o Overrides) Config {
	file := readEnvFile(o.EnvFile)

	lookup := func(key, fallback string) string {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v
		}
		if v, ok := file[key]; ok && v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		Dockerfile:          lookup(EnvDockerfile, defaultDockerfile),
		Context:             lookup(EnvBuildContext, defaultBuildContext),
		Platform:            lookup(EnvPlatform, defaultPlatform),
		LocalImage:          lookup(EnvLocalImage, ""),
		RemoteImage:         lookup(EnvRemoteImage, ""),
		InstanceName:        defaultInstanceName,
		MeasurementPath:     lookup(EnvMeasurementPath, defaultMeasurementPath),
		OutputPath:          defaultOutputPath,
		ContainerdAddress:   lookup(EnvContainerdAddress, defaultAddress),
		ContainerdNamespace: lookup(EnvContainerdNamespace, defaultNamespace),
	}

	if o.RemoteImage != "" {
		cfg.RemoteImage = o.RemoteImage
	}
	if o.LocalImage != "" {
		cfg.LocalImage = o.LocalImage
	}
	if o.Platform != "" {
		cfg.Platform = o.Platform
	}
	if o.InstanceName != "" {
		cfg.InstanceName = o.InstanceName
	}
	if o.OutputPath != "" {
		cfg.OutputPath = o.OutputPath
	}
	if o.Address != "" {
		cfg.ContainerdAddress = o.Address
	}
	if o.Namespace != "" {
		cfg.ContainerdNamespace = o.Namespace
	}

	if cfg.LocalImage == "" {
		cfg.LocalImage = deriveLocalImage(cfg.Context)
	}

	if o.UniqueName {
		cfg.InstanceName = cfg.InstanceName + "-" + uuid.NewString()[:8]
	}

	return cfg
}

// Checks that the configuration can drive a pipeline run.
//
// The remote image name must be non-empty after trimming whitespace and the
// platform must parse as an OCI platform. Violations return an error wrapping
// [ErrConfiguration]; the platform is normalized in place on success.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.RemoteImage) == "" {
		return fmt.Errorf("%w: %s is not set", ErrConfiguration, EnvRemoteImage)
	}

	p, err := platforms.Parse(c.Platform)
	if err != nil {
		return fmt.Errorf("%w: invalid platform %q: %v", ErrConfiguration, c.Platform, err)
	}
	c.Platform = platforms.Format(p)

	return nil
}

// Reads the optional env file into a map.
//
// A missing file is not an error; a malformed file is ignored with its
// contents discarded rather than failing the run.
func readEnvFile(path string) map[string]string {
	if path == "" {
		path = ".env"
	}

	values, err := godotenv.Read(path)
	if err != nil {
		return nil
	}
	return values
}

// Derives a local image tag from the build context directory name.
func deriveLocalImage(context string) string {
	abs, err := filepath.Abs(context)
	if err != nil {
		return "function:latest"
	}

	base := strings.ToLower(filepath.Base(abs))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "function:latest"
	}
	return base + ":latest"
}
