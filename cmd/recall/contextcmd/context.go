// Package contextcmder provides the context command, which assembles the
// prompt context block for a user and message.
package contextcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asenalabs/recall/cmd/recall/runtime"
	"github.com/asenalabs/recall/pkg/config"
)

const contextLongDesc string = `Assemble the context block that would be injected into the assistant's
prompt for a given user and message. Combines recent conversation,
relevant long-term memories, and the current session buffer, truncated
to the configured character budget.

Examples:
  recall context ayse "yarın kahve almayı hatırlat"
  recall context ayse "what's my schedule" --max-chars 2000`

const contextShortDesc string = "Assemble the prompt context for a message"

func NewContextCmd() *cobra.Command {
	var maxChars int

	cmd := &cobra.Command{
		Use:   "context <owner> <message>",
		Short: contextShortDesc,
		Long:  contextLongDesc,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContext(cmd, args[0], args[1])
		},
	}

	config.AddIntFlag(cmd, config.Flags, config.FlagContextChars, &maxChars)

	return cmd
}

func runContext(cmd *cobra.Command, owner, message string) error {
	rt, err := runtime.Open(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	block := rt.Manager.BuildContext(cmd.Context(), owner, message, rt.MaxChars())
	if block == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "No context available for %s\n", owner)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), block)

	return nil
}
