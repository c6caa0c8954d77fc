// Package searchcmder provides the search command for relevance-ranked
// memory lookup.
package searchcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asenalabs/recall/cmd/recall/runtime"
	"github.com/asenalabs/recall/pkg/cliui"
)

const searchLongDesc string = `Find the memories most relevant to a query, best match first.

Relevance combines keyword overlap, importance, recency of update, and how
often a memory has been recalled. A query with no usable keywords falls back
to the most recently touched memories.

Examples:
  recall search ayse "kahve içmek istiyorum"
  recall search mehmet "hafta sonu planı" --limit 3`

const searchShortDesc string = "Relevance-ranked memory lookup"

func NewSearchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <owner> <query>",
		Short: searchShortDesc,
		Long:  searchLongDesc,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args[0], args[1], limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum results")

	return cmd
}

func runSearch(cmd *cobra.Command, owner, query string, limit int) error {
	rt, err := runtime.Open(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	records := rt.Manager.ContextualMemories(cmd.Context(), owner, query, limit)
	if len(records) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No relevant memories for %s\n", owner)
		return nil
	}

	for i, rec := range records {
		fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s %s\n",
			i+1,
			rec.Content,
			cliui.DimStyle.Render(fmt.Sprintf("(%s, importance %d, recalled %dx)",
				rec.Category, rec.Importance, rec.AccessCount)),
		)
	}

	return nil
}
