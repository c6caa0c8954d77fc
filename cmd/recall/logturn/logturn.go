// Package logturncmder provides the log command for appending conversation
// turns.
package logturncmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asenalabs/recall/cmd/recall/runtime"
	"github.com/asenalabs/recall/pkg/cliui"
	"github.com/asenalabs/recall/pkg/memory"
)

const logLongDesc string = `Append one conversation turn to a user's history.

Turns are append-only and never deduplicated. The chat handler normally
writes these; the command exists for backfills and testing. With --async
the write goes through the background persistence pool instead of inline.

Examples:
  recall log ayse "Merhaba" "Merhaba! Nasıl yardımcı olabilirim?"
  recall log ayse "Merhaba" "Merhaba!" --async`

const logShortDesc string = "Append a conversation turn"

func NewLogCmd() *cobra.Command {
	var async bool

	cmd := &cobra.Command{
		Use:   "log <owner> <user-message> <assistant-response>",
		Short: logShortDesc,
		Long:  logLongDesc,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(cmd, args[0], args[1], args[2], async)
		},
	}

	cmd.Flags().BoolVar(&async, "async", false, "write through the background persistence pool")

	return cmd
}

func runLog(cmd *cobra.Command, owner, userMessage, assistantResponse string, async bool) error {
	rt, err := runtime.Open(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	params := memory.TurnParams{
		Owner:             owner,
		UserMessage:       userMessage,
		AssistantResponse: assistantResponse,
	}

	if async {
		if !rt.Manager.LogTurnAsync(params) {
			return fmt.Errorf("turn dropped, persistence queue full")
		}
	} else if rt.Manager.LogTurn(cmd.Context(), params) == "" {
		return fmt.Errorf("turn not stored")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Logged turn for %s\n", cliui.SuccessMark, owner)

	return nil
}
