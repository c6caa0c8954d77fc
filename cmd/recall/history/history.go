// Package historycmder provides the history command for listing recent
// conversation turns.
package historycmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asenalabs/recall/cmd/recall/runtime"
	"github.com/asenalabs/recall/pkg/cliui"
)

const historyLongDesc string = `Show the most recent conversation turns for a user, oldest first.

Examples:
  recall history ayse
  recall history ayse --limit 10`

const historyShortDesc string = "Show recent conversation turns"

func NewHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history <owner>",
		Short: historyShortDesc,
		Long:  historyLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, args[0], limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "maximum turns to show")

	return cmd
}

func runHistory(cmd *cobra.Command, owner string, limit int) error {
	rt, err := runtime.Open(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	turns := rt.Manager.RecentTurns(cmd.Context(), owner, limit)
	if len(turns) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No conversation history for %s\n", owner)
		return nil
	}

	out := cmd.OutOrStdout()
	for _, t := range turns {
		fmt.Fprintf(out, "%s %s\n",
			cliui.DimStyle.Render(t.Timestamp.Format("2006-01-02 15:04:05")),
			cliui.KeyStyle.Render(t.Owner))
		fmt.Fprintf(out, "  %s: %s\n", t.Owner, t.UserMessage)
		fmt.Fprintf(out, "  Asena: %s\n", t.AssistantResponse)
	}

	return nil
}
