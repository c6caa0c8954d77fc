// Package cleanupcmder provides the cleanup command for purging expired
// memories.
package cleanupcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asenalabs/recall/cmd/recall/runtime"
	"github.com/asenalabs/recall/pkg/cliui"
)

const cleanupLongDesc string = `Remove memories whose expiry time has passed.

Permanent memories are never removed, regardless of any expiry set on
them. Intended to run periodically (cron or a systemd timer).

Examples:
  recall cleanup`

const cleanupShortDesc string = "Purge expired memories"

func NewCleanupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: cleanupShortDesc,
		Long:  cleanupLongDesc,
		Args:  cobra.NoArgs,
		RunE:  runCleanup,
	}

	return cmd
}

func runCleanup(cmd *cobra.Command, _ []string) error {
	rt, err := runtime.Open(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	var removed int64
	err = cliui.Step(cmd.OutOrStdout(), "Purging expired memories", func() error {
		removed = rt.Manager.CleanupExpired(cmd.Context())
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired memories\n", removed)

	return nil
}
