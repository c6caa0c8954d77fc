// Package runtime wires a memory.Manager from the resolved configuration.
// Every recall subcommand goes through Open so storage selection, logging,
// and the dot-dir database path resolve identically across verbs.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/asenalabs/recall/pkg/config"
	"github.com/asenalabs/recall/pkg/dotdir"
	"github.com/asenalabs/recall/pkg/logger"
	"github.com/asenalabs/recall/pkg/memory"
	"github.com/asenalabs/recall/pkg/storage/inmemory"
	"github.com/asenalabs/recall/pkg/storage/postgres"
	"github.com/asenalabs/recall/pkg/storage/sqlite"
	"github.com/asenalabs/recall/pkg/worker"
)

// Runtime bundles the wired manager with the handles a command needs to
// shut down cleanly.
type Runtime struct {
	Manager *memory.Manager
	Logger  *slog.Logger
	Viper   *viper.Viper

	store memory.Store
	pool  *worker.Pool
}

// Open resolves config for the given command and constructs the manager.
// Callers must Close the returned runtime.
func Open(cmd *cobra.Command) (*Runtime, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	configDir, _ := cmd.Flags().GetString("config-dir")

	v, err := config.InitViper(configDir)
	if err != nil {
		return nil, fmt.Errorf("initializing config: %w", err)
	}

	log := logger.New(
		logger.WithPretty(!v.GetBool("log.json")),
		logger.WithJSON(v.GetBool("log.json")),
		logger.WithDebug(debug || v.GetBool("log.debug")),
		logger.WithWriter(cmd.ErrOrStderr()),
	)

	// Persistent overrides registered on the root command take precedence
	// over env and the config file.
	config.BindRegisteredFlags(v, cmd, config.Flags, []string{
		config.FlagStorageProvider,
		config.FlagSQLite,
		config.FlagPostgres,
		config.FlagSessionCap,
		config.FlagContextChars,
		config.FlagWorkers,
		config.FlagQueueSize,
	})

	store, err := openStore(cmd.Context(), v, configDir)
	if err != nil {
		return nil, err
	}

	pool, err := worker.NewPool(worker.Config{
		Store:      store,
		NumWorkers: v.GetUint("worker.workers"),
		QueueSize:  v.GetUint("worker.queue_size"),
		Logger:     log,
	})
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("starting persistence pool: %w", err)
	}

	manager := memory.NewManager(memory.Config{
		Store:           store,
		Logger:          log,
		SessionCapacity: v.GetInt("session.capacity"),
		Async:           pool,
	})

	return &Runtime{
		Manager: manager,
		Logger:  log,
		Viper:   v,
		store:   store,
		pool:    pool,
	}, nil
}

// Close drains the persistence pool and releases the storage backend.
func (r *Runtime) Close() {
	r.pool.Close()
	if err := r.store.Close(); err != nil {
		r.Logger.Warn("closing store", "error", err)
	}
}

// MaxChars returns the configured context character budget.
func (r *Runtime) MaxChars() int {
	return r.Viper.GetInt("context.max_chars")
}

func openStore(ctx context.Context, v *viper.Viper, configDir string) (memory.Store, error) {
	provider := v.GetString("storage.provider")

	switch provider {
	case "sqlite":
		path, err := sqlitePath(v, configDir)
		if err != nil {
			return nil, err
		}
		return sqlite.NewStore(path)

	case "postgres":
		connStr := v.GetString("storage.postgres_url")
		if connStr == "" {
			return nil, fmt.Errorf("storage.postgres_url is required for the postgres provider")
		}
		return postgres.NewStore(ctx, connStr)

	case "memory":
		return inmemory.NewStore(), nil
	}

	return nil, fmt.Errorf("unknown storage provider %q (want sqlite, postgres, or memory)", provider)
}

// sqlitePath resolves the configured database path. A bare file name lands
// in the .recall/ directory; absolute and relative paths are used as-is.
func sqlitePath(v *viper.Viper, configDir string) (string, error) {
	path := v.GetString("storage.sqlite_path")
	if path == ":memory:" || filepath.Base(path) != path {
		return path, nil
	}

	target, err := dotdir.NewManager().Target(configDir)
	if err != nil {
		return "", fmt.Errorf("resolving database directory: %w", err)
	}

	return filepath.Join(target, path), nil
}
