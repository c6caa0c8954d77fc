// Package listcmder provides the list command for browsing stored memories.
package listcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asenalabs/recall/cmd/recall/runtime"
	"github.com/asenalabs/recall/pkg/cliui"
	"github.com/asenalabs/recall/pkg/memory"
)

const listLongDesc string = `List a user's stored memories, most important first.

Expired memories are hidden unless --include-expired is set; permanent
memories never expire.

Examples:
  recall list ayse
  recall list ayse --category allergy
  recall list mehmet --include-expired --limit 100`

const listShortDesc string = "List stored memories"

func NewListCmd() *cobra.Command {
	var (
		category       string
		limit          int
		includeExpired bool
	)

	cmd := &cobra.Command{
		Use:   "list <owner>",
		Short: listShortDesc,
		Long:  listLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args[0], category, limit, includeExpired)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Filter by category")
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum records to show")
	cmd.Flags().BoolVar(&includeExpired, "include-expired", false, "Include expired memories")

	return cmd
}

func runList(cmd *cobra.Command, owner, category string, limit int, includeExpired bool) error {
	rt, err := runtime.Open(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	records := rt.Manager.Memories(cmd.Context(), memory.QueryParams{
		Owner:          owner,
		Category:       category,
		Limit:          limit,
		IncludeExpired: includeExpired,
	})

	if len(records) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No memories for %s\n", owner)
		return nil
	}

	for _, rec := range records {
		printRecord(cmd, rec)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n%d memories\n", len(records))

	return nil
}

func printRecord(cmd *cobra.Command, rec memory.Record) {
	marker := " "
	if rec.Permanent {
		marker = cliui.KeyStyle.Render("*")
	}

	line := fmt.Sprintf("%s [%d] %-16s %s", marker, rec.Importance, rec.Category, rec.Content)
	if rec.ExpiresAt != nil {
		line += cliui.DimStyle.Render(fmt.Sprintf("  (expires %s)", rec.ExpiresAt.Format("2006-01-02 15:04")))
	}

	fmt.Fprintln(cmd.OutOrStdout(), line)
}
