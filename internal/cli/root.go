package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/vortexlabs/measurectl/internal"
)

// Represents the root command for the measurectl tool.
var RootCmd struct {
	Quiet   bool `short:"q" help:"Suppress informational output."`
	Verbose bool `short:"v" help:"Enable verbose output."`
	Debug   bool `short:"d" help:"Enable debug output."`

	VersionFlag kong.VersionFlag `name:"version" help:"Show version information and exit."`

	EnvFile             string `help:"Env file with configuration overrides, skipped if absent." placeholder:"PATH"`
	Image               string `help:"Remote image name in the registry (name[:tag])." placeholder:"NAME"`
	LocalImage          string `help:"Tag for local-only builds." placeholder:"NAME"`
	Platform            string `help:"Target OCI platform." placeholder:"PLATFORM"`
	Name                string `help:"Measurement instance name." placeholder:"NAME"`
	UniqueName          bool   `help:"Append a random suffix to the instance name so concurrent runs do not collide."`
	Output              string `help:"File the measurement is written to." placeholder:"PATH"`
	ContainerdAddress   string `help:"Containerd socket address." placeholder:"PATH"`
	ContainerdNamespace string `help:"Containerd namespace." placeholder:"NAME"`

	Build       BuildCmd       `cmd:"" help:"Build the function image locally."`
	Publish     PublishCmd     `cmd:"" help:"Build and push the function image, then measure it."`
	Measurement MeasurementCmd `cmd:"" help:"Extract the enclave measurement from the published image."`
	Clean       CleanCmd       `cmd:"" help:"Discard local build caches."`
	Params      ParamsCmd      `cmd:"" help:"Work with function request parameter strings."`
	Version     VersionCmd     `cmd:"" help:"Show version information."`
}

// Parses arguments, configures logging, and runs the selected subcommand.
func Execute() error {

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kongCtx := kong.Parse(&RootCmd,
		kong.Name(internal.Name),
		kong.Description("Builds confidential function images and extracts their enclave measurement."),
		kong.UsageOnError(),
		kong.Vars{
			"version": internal.VersionString(),
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	configureLogger()

	return kongCtx.Run()
}

// Configures the global logger based on CLI flags.
//
// The final modes are committed back to the shared mode state so that
// internal.IsQuiet, internal.IsDebug, and internal.IsVerbose reflect the
// effective run state after parsing, not just the build-time defaults.
func configureLogger() {
	internal.SetDebug(RootCmd.Debug || internal.IsDebug())
	internal.SetQuiet(RootCmd.Quiet || internal.IsQuiet())
	internal.SetVerbose(RootCmd.Verbose || internal.IsVerbose())

	var level slog.Level
	switch {
	case internal.IsDebug():
		level = slog.LevelDebug
	case internal.IsQuiet():
		level = slog.LevelWarn
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: internal.IsVerbose(),
	})
	slog.SetDefault(slog.New(handler))
}
