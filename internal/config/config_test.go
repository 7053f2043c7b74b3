package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load(Overrides{EnvFile: filepath.Join(t.TempDir(), "missing.env")})

	assert.Equal(t, "Dockerfile", cfg.Dockerfile)
	assert.Equal(t, ".", cfg.Context)
	assert.Equal(t, "linux/amd64", cfg.Platform)
	assert.Equal(t, "measure-function", cfg.InstanceName)
	assert.Equal(t, "/measurement.txt", cfg.MeasurementPath)
	assert.Equal(t, "measurement.txt", cfg.OutputPath)
	assert.NotEmpty(t, cfg.LocalImage, "local image is derived from the context directory")
	assert.True(t, strings.HasSuffix(cfg.LocalImage, ":latest"))
}

func TestLoadEnvFile(t *testing.T) {
	path := writeEnvFile(t, "DOCKER_IMAGE_NAME=acme/foo\nDOCKER_PLATFORM=linux/arm64\n")

	cfg := Load(Overrides{EnvFile: path})

	assert.Equal(t, "acme/foo", cfg.RemoteImage)
	assert.Equal(t, "linux/arm64", cfg.Platform)
}

func TestLoadProcessEnvBeatsFile(t *testing.T) {
	path := writeEnvFile(t, "DOCKER_IMAGE_NAME=file/name\n")
	t.Setenv(EnvRemoteImage, "env/name")

	cfg := Load(Overrides{EnvFile: path})

	assert.Equal(t, "env/name", cfg.RemoteImage)
}

func TestLoadOverridesBeatEnv(t *testing.T) {
	t.Setenv(EnvRemoteImage, "env/name")
	t.Setenv(EnvPlatform, "linux/arm64")

	cfg := Load(Overrides{
		EnvFile:      filepath.Join(t.TempDir(), "missing.env"),
		RemoteImage:  "flag/name",
		Platform:     "linux/amd64",
		InstanceName: "custom",
		OutputPath:   "out.txt",
	})

	assert.Equal(t, "flag/name", cfg.RemoteImage)
	assert.Equal(t, "linux/amd64", cfg.Platform)
	assert.Equal(t, "custom", cfg.InstanceName)
	assert.Equal(t, "out.txt", cfg.OutputPath)
}

func TestLoadMissingEnvFileSkipped(t *testing.T) {
	cfg := Load(Overrides{
		EnvFile:     filepath.Join(t.TempDir(), "does-not-exist.env"),
		RemoteImage: "acme/foo",
	})

	assert.Equal(t, "acme/foo", cfg.RemoteImage)
}

func TestLoadUniqueName(t *testing.T) {
	overrides := Overrides{
		EnvFile:    filepath.Join(t.TempDir(), "missing.env"),
		UniqueName: true,
	}

	first := Load(overrides)
	second := Load(overrides)

	assert.True(t, strings.HasPrefix(first.InstanceName, "measure-function-"))
	assert.NotEqual(t, first.InstanceName, second.InstanceName)
}

func TestValidateMissingRemoteImage(t *testing.T) {
	for _, remote := range []string{"", "   ", "\t\n"} {
		cfg := Config{RemoteImage: remote, Platform: "linux/amd64"}

		err := cfg.Validate()
		require.ErrorIs(t, err, ErrConfiguration)
		assert.Contains(t, err.Error(), EnvRemoteImage)
	}
}

func TestValidateBadPlatform(t *testing.T) {
	cfg := Config{RemoteImage: "acme/foo", Platform: "not a platform"}

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrConfiguration)
	assert.Contains(t, err.Error(), "platform")
}

func TestValidateNormalizesPlatform(t *testing.T) {
	cfg := Config{RemoteImage: "acme/foo", Platform: "linux/x86_64"}

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "linux/amd64", cfg.Platform)
}
