// Parses flags and dispatches the measurectl workflows.
//
// The tool accepts the following global flags:
//
//	-q, --quiet     Suppress informational output.
//	-v, --verbose   Enable verbose output.
//	-d, --debug     Enable debug output.
//	    --env-file  Optional env file with overrides.
//	    --image     Remote image name.
//	    --version   Show version information and exit.
//
// Flags override build-time defaults set via linker flags and settings read
// from the environment. After parsing, the global logger is reconfigured to
// reflect the final level before any workflow runs.
package cli
