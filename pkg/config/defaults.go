package config

import (
	"github.com/asenalabs/recall/pkg/memory"
	"github.com/asenalabs/recall/pkg/session"
)

const (
	defaultStorageProvider = "sqlite"
	defaultSQLiteFile      = "recall.db"

	defaultWorkers   uint = 3
	defaultQueueSize uint = 256
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
// Storage.SQLitePath is resolved relative to the .recall/ directory at
// wiring time when left as the bare default file name.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Storage: StorageConfig{
			Provider:   defaultStorageProvider,
			SQLitePath: defaultSQLiteFile,
		},
		Session: SessionConfig{
			Capacity: session.DefaultCapacity,
		},
		Context: ContextConfig{
			MaxChars: memory.DefaultContextChars,
		},
		Worker: WorkerConfig{
			Workers:   defaultWorkers,
			QueueSize: defaultQueueSize,
		},
	}
}
