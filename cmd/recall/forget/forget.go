// Package forgetcmder provides the forget command for deleting memories.
package forgetcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asenalabs/recall/cmd/recall/runtime"
	"github.com/asenalabs/recall/pkg/cliui"
)

const forgetLongDesc string = `Delete a user's memories matching a category and/or content pattern.

With no filters every memory the user has is deleted, so at least one of
--category or --pattern is required unless --all is given.

Examples:
  recall forget ayse --pattern "kahve"
  recall forget mehmet --category plan
  recall forget ayse --all`

const forgetShortDesc string = "Delete matching memories"

func NewForgetCmd() *cobra.Command {
	var (
		category string
		pattern  string
		all      bool
	)

	cmd := &cobra.Command{
		Use:   "forget <owner>",
		Short: forgetShortDesc,
		Long:  forgetLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if category == "" && pattern == "" && !all {
				return fmt.Errorf("refusing to delete everything: pass --category, --pattern, or --all")
			}
			return runForget(cmd, args[0], category, pattern)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Delete only this category")
	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "Delete memories containing this substring")
	cmd.Flags().BoolVar(&all, "all", false, "Delete every memory for the owner")

	return cmd
}

func runForget(cmd *cobra.Command, owner, category, pattern string) error {
	rt, err := runtime.Open(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	count := rt.Manager.Forget(cmd.Context(), owner, category, pattern)

	fmt.Fprintf(cmd.OutOrStdout(), "%s Forgot %d memories for %s\n",
		cliui.Mark(nil), count, cliui.KeyStyle.Render(owner))

	return nil
}
