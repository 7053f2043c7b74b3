// Package params encodes and checks function request parameters.
//
// A confidential function receives its per-request parameters as a single
// "KEY=VALUE,KEY=VALUE" string passed through the container params field of
// a function request. This package is the host-side counterpart of the
// function's decoder: it builds the string deterministically, parses it
// back, and checks that the keys the function will refuse to run without
// are present.
//
// Values must not contain commas; the wire format has no escaping.
package params

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrParams = errors.New("invalid parameters")

// Builds the wire string from a parameter map.
//
// Keys are emitted in sorted order so the same map always encodes to the
// same string. Keys or values containing the pair or list separators are
// rejected.
func Encode(values map[string]string) (string, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		v := values[k]
		if k == "" {
			return "", fmt.Errorf("%w: empty key", ErrParams)
		}
		if strings.ContainsAny(k, ",=") {
			return "", fmt.Errorf("%w: key %q contains a separator", ErrParams, k)
		}
		if strings.Contains(v, ",") {
			return "", fmt.Errorf("%w: value for %s contains a comma", ErrParams, k)
		}
		pairs = append(pairs, k+"="+v)
	}

	return strings.Join(pairs, ","), nil
}

// Parses the wire string into a parameter map.
//
// Entries without a "=" are skipped, matching the function-side decoder.
// Later duplicates of a key overwrite earlier ones.
func Decode(s string) map[string]string {
	values := make(map[string]string)

	for _, pair := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			continue
		}
		values[k] = v
	}

	return values
}

// Checks that every required key is present and non-empty.
//
// Returns an error naming the first missing key, in the wording the
// function itself uses when it rejects the request.
func Validate(values map[string]string, required ...string) error {
	for _, key := range required {
		if values[key] == "" {
			return fmt.Errorf("%w: %s cannot be undefined", ErrParams, key)
		}
	}
	return nil
}
