package internal

import (
	"strconv"
	"sync/atomic"
)

// Output modes for the current run.
//
// The modes are seeded from linker flags at startup and committed once more
// by the CLI after flag parsing, so the Is* accessors reflect the effective
// run state for any component that consults them.
var (
	quietMode   atomic.Bool // Warnings and errors only.
	debugMode   atomic.Bool // Debug-level logging.
	verboseMode atomic.Bool // Extra detail on log records.
)

// Seeds the modes from the linker flags.
//
// The rawQuiet, rawDebug, and rawVerbose variables should be set via ldflags
// during the build process and default to "false" otherwise.
func init() {
	if v, err := strconv.ParseBool(rawQuiet); err == nil {
		quietMode.Store(v)
	}
	if v, err := strconv.ParseBool(rawDebug); err == nil {
		debugMode.Store(v)
	}
	if v, err := strconv.ParseBool(rawVerbose); err == nil {
		verboseMode.Store(v)
	}
}

// Commits the effective quiet mode for this run.
func SetQuiet(enabled bool) {
	quietMode.Store(enabled)
}

// Returns true if quiet mode is enabled.
func IsQuiet() bool {
	return quietMode.Load()
}

// Commits the effective debug mode for this run.
func SetDebug(enabled bool) {
	debugMode.Store(enabled)
}

// Returns true if debug mode is enabled.
func IsDebug() bool {
	return debugMode.Load()
}

// Commits the effective verbose mode for this run.
func SetVerbose(enabled bool) {
	verboseMode.Store(enabled)
}

// Returns true if verbose logging is enabled.
func IsVerbose() bool {
	return verboseMode.Load()
}
