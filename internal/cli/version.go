package cli

import (
	"context"
	"fmt"

	"github.com/pkgerio/pkger/internal/pkgcfg"
)

// VersionCmd is the 'pkger version' command.
type VersionCmd struct{}

// Run prints the build's version summary.
func (c *VersionCmd) Run(ctx context.Context) error {
	fmt.Println(pkgcfg.VersionString())
	return nil
}
