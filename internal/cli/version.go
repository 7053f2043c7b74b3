package cli

import (
	"context"
	"fmt"

	"github.com/vortexlabs/measurectl/internal"
)

// Represents the 'measurectl version' command.
type VersionCmd struct{}

// Executes the version command.
func (c *VersionCmd) Run(ctx context.Context) error {
	fmt.Println(internal.VersionString())
	return nil
}
