package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/vortexlabs/measurectl/internal"
	"github.com/vortexlabs/measurectl/internal/config"
)

// Saves and restores the global flag state around a test.
func resetRootCmd(t *testing.T) {
	t.Helper()
	saved := RootCmd
	t.Cleanup(func() { RootCmd = saved })
}

func TestConfigureLoggerCommitsModes(t *testing.T) {
	resetRootCmd(t)
	quiet, debug, verbose := internal.IsQuiet(), internal.IsDebug(), internal.IsVerbose()
	t.Cleanup(func() {
		internal.SetQuiet(quiet)
		internal.SetDebug(debug)
		internal.SetVerbose(verbose)
	})

	RootCmd.Quiet = false
	RootCmd.Debug = true
	RootCmd.Verbose = true
	configureLogger()

	if !internal.IsDebug() {
		t.Fatal("debug flag not committed to the shared mode state")
	}
	if !internal.IsVerbose() {
		t.Fatal("verbose flag not committed to the shared mode state")
	}
	if internal.IsQuiet() {
		t.Fatal("quiet mode committed without the flag")
	}
}

func TestPipelineConfigNormalizesPlatform(t *testing.T) {
	resetRootCmd(t)
	RootCmd.Image = "acme/foo"
	RootCmd.Platform = "linux/x86_64"

	cfg, err := pipelineConfig()
	if err != nil {
		t.Fatalf("pipelineConfig returned %v", err)
	}
	if cfg.Platform != "linux/amd64" {
		t.Fatalf("platform = %q, want normalized linux/amd64", cfg.Platform)
	}
}

func TestPipelineConfigMissingImage(t *testing.T) {
	resetRootCmd(t)
	t.Setenv(config.EnvRemoteImage, "")
	RootCmd.Image = ""

	_, err := pipelineConfig()
	if !errors.Is(err, config.ErrConfiguration) {
		t.Fatalf("err = %v, want a configuration error", err)
	}
}

func TestVersionFlagPrintsVersion(t *testing.T) {
	resetRootCmd(t)

	var out strings.Builder
	exited := false
	parser, err := kong.New(&RootCmd,
		kong.Name(internal.Name),
		kong.Vars{"version": internal.VersionString()},
		kong.Writers(&out, &out),
		kong.Exit(func(int) { exited = true }),
	)
	if err != nil {
		t.Fatalf("kong.New: %v", err)
	}

	parser.Parse([]string{"--version"})

	if !exited {
		t.Fatal("--version did not request exit")
	}
	if !strings.Contains(out.String(), internal.VersionString()) {
		t.Fatalf("output %q missing %q", out.String(), internal.VersionString())
	}
}
