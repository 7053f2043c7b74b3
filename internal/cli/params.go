package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/vortexlabs/measurectl/internal/params"
)

// Represents the 'measurectl params' command group.
type ParamsCmd struct {
	Encode ParamsEncodeCmd `cmd:"" help:"Encode KEY=VALUE pairs into a request parameter string."`
	Check  ParamsCheckCmd  `cmd:"" help:"Check a request parameter string for required keys."`
}

// Represents the 'measurectl params encode' command.
type ParamsEncodeCmd struct {
	Pairs []string `arg:"" name:"pair" help:"KEY=VALUE pairs to encode."`
}

// Encodes the given pairs and prints the wire string.
func (c *ParamsEncodeCmd) Run(ctx context.Context) error {
	values := make(map[string]string, len(c.Pairs))
	for _, pair := range c.Pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return fmt.Errorf("%w: %q is not a KEY=VALUE pair", params.ErrParams, pair)
		}
		values[k] = v
	}

	encoded, err := params.Encode(values)
	if err != nil {
		return err
	}

	fmt.Println(encoded)
	return nil
}

// Represents the 'measurectl params check' command.
type ParamsCheckCmd struct {
	Require []string `help:"Keys that must be present and non-empty." placeholder:"KEY"`
	Params  string   `arg:"" help:"Encoded request parameter string."`
}

// Decodes the wire string and validates the required keys.
func (c *ParamsCheckCmd) Run(ctx context.Context) error {
	values := params.Decode(c.Params)

	if err := params.Validate(values, c.Require...); err != nil {
		return err
	}

	fmt.Printf("ok: %d parameter(s)\n", len(values))
	return nil
}
