// Package remembercmder provides the remember command for storing memories.
package remembercmder

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/asenalabs/recall/cmd/recall/runtime"
	"github.com/asenalabs/recall/pkg/cliui"
	"github.com/asenalabs/recall/pkg/memory"
)

const rememberLongDesc string = `Store a memory for a user, with automatic deduplication.

Re-remembering content the user already has updates the existing record
(access count, importance, permanence) instead of creating a duplicate.

Examples:
  recall remember ayse "Fındık alerjisi var" --category allergy --importance 9 --permanent
  recall remember ayse "Kahve sever" --category food_preference
  recall remember mehmet "Cuma akşamı sinema planı" --category plan --expires-in 168h`

const rememberShortDesc string = "Store a memory with deduplication"

func NewRememberCmd() *cobra.Command {
	var (
		category   string
		importance int
		permanent  bool
		expiresIn  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "remember <owner> <content>",
		Short: rememberShortDesc,
		Long:  rememberLongDesc,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemember(cmd, args[0], args[1], category, importance, permanent, expiresIn)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "general", "Free-form category tag")
	cmd.Flags().IntVarP(&importance, "importance", "i", memory.DefaultImportance, "Importance 1-10")
	cmd.Flags().BoolVarP(&permanent, "permanent", "p", false, "Exempt from expiry")
	cmd.Flags().DurationVar(&expiresIn, "expires-in", 0, "Expire after this duration (0 = never)")

	return cmd
}

func runRemember(cmd *cobra.Command, owner, content, category string, importance int, permanent bool, expiresIn time.Duration) error {
	rt, err := runtime.Open(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	var expiresAt *time.Time
	if expiresIn > 0 {
		t := time.Now().Add(expiresIn)
		expiresAt = &t
	}

	id := rt.Manager.Remember(cmd.Context(), memory.UpsertParams{
		Owner:      owner,
		Category:   category,
		Content:    content,
		Importance: importance,
		Permanent:  permanent,
		ExpiresAt:  expiresAt,
	})
	if id == "" {
		return fmt.Errorf("memory not stored (empty owner or content, or storage failure)")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Remembered for %s: %s\n",
		cliui.SuccessMark,
		cliui.KeyStyle.Render(owner),
		cliui.ValueStyle.Render(content),
	)

	return nil
}
