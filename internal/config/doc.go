// Package config loads the immutable run configuration.
//
// Settings are resolved once per invocation from built-in defaults, an
// optional env file, the process environment, and command-line overrides,
// in that order of increasing precedence. The resulting [Config] is never
// mutated afterwards; every component receives it by value and no component
// reads ambient environment state directly.
//
// The env file is read with godotenv and is silently skipped when absent,
// mirroring an optional "include .env" in a make-driven build.
package config
