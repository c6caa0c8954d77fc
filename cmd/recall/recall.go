// Package recallcmder
package recallcmder

import (
	"github.com/spf13/cobra"

	cleanupcmder "github.com/asenalabs/recall/cmd/recall/cleanup"
	configcmder "github.com/asenalabs/recall/cmd/recall/config"
	contextcmder "github.com/asenalabs/recall/cmd/recall/contextcmd"
	forgetcmder "github.com/asenalabs/recall/cmd/recall/forget"
	historycmder "github.com/asenalabs/recall/cmd/recall/history"
	listcmder "github.com/asenalabs/recall/cmd/recall/list"
	logturncmder "github.com/asenalabs/recall/cmd/recall/logturn"
	remembercmder "github.com/asenalabs/recall/cmd/recall/remember"
	searchcmder "github.com/asenalabs/recall/cmd/recall/search"
	versioncmder "github.com/asenalabs/recall/cmd/version"
	"github.com/asenalabs/recall/pkg/config"
)

const recallLongDesc string = `Recall is the conversational memory engine behind the Asena assistant.

Store and retrieve deduplicated long-term memories per user, keep the
conversation log, and assemble bounded context blocks for prompt injection.

Common operations:
  recall remember <owner> <content>   Store (or re-learn) a memory
  recall search <owner> <query>       Relevance-ranked memory lookup
  recall context <owner> <message>    Assemble the prompt context block`

const recallShortDesc string = "Recall - conversational memory for Asena"

func NewRecallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recall",
		Short: recallShortDesc,
		Long:  recallLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override the .recall/ directory")

	// Storage and engine overrides, resolved through the viper precedence
	// chain (flag > env > config file > default).
	var (
		storageProvider, sqlitePath, postgresURL string
		sessionCapacity                          int
		workers, queueSize                       uint
	)
	config.AddPersistentStringFlag(cmd, config.Flags, config.FlagStorageProvider, &storageProvider)
	config.AddPersistentStringFlag(cmd, config.Flags, config.FlagSQLite, &sqlitePath)
	config.AddPersistentStringFlag(cmd, config.Flags, config.FlagPostgres, &postgresURL)
	config.AddPersistentIntFlag(cmd, config.Flags, config.FlagSessionCap, &sessionCapacity)
	config.AddPersistentUintFlag(cmd, config.Flags, config.FlagWorkers, &workers)
	config.AddPersistentUintFlag(cmd, config.Flags, config.FlagQueueSize, &queueSize)

	// Add subcommands
	cmd.AddCommand(remembercmder.NewRememberCmd())
	cmd.AddCommand(listcmder.NewListCmd())
	cmd.AddCommand(searchcmder.NewSearchCmd())
	cmd.AddCommand(forgetcmder.NewForgetCmd())
	cmd.AddCommand(logturncmder.NewLogCmd())
	cmd.AddCommand(historycmder.NewHistoryCmd())
	cmd.AddCommand(contextcmder.NewContextCmd())
	cmd.AddCommand(cleanupcmder.NewCleanupCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
