package core

import (
	"context"
	"fmt"
	"os"
	"strings"

	"spacecore/internal/infra/persistence/memory"
	"spacecore/internal/infra/persistence/postgres"
	"spacecore/internal/infra/persistence/sqlite"
)

// StorageDriver identifies a concrete persistent storage implementation.
type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"   // in-memory only (tests / ephemeral)
	StorageSQLite   StorageDriver = "sqlite"   // embedded sqlite file
	StoragePostgres StorageDriver = "postgres" // PostgreSQL server
)

// OpenPersistentStore selects a backend using environment variables and seeds
// the demo dataset when the chosen store starts out empty. Defaults to sqlite
// when unset.
//
//	SPACECORE_STORAGE_DRIVER: memory|sqlite|postgres (default sqlite)
//	SPACECORE_SQLITE_PATH:    path to sqlite file (default ./spacecore.db)
//	SPACECORE_POSTGRES_DSN:   postgres DSN when driver=postgres
//	SPACECORE_SEED:           "false" disables seeding (default true)
func OpenPersistentStore(engine *RulesEngine) (PersistentStore, error) {
	driver := os.Getenv("SPACECORE_STORAGE_DRIVER")
	if driver == "" {
		driver = string(StorageSQLite)
	}
	seed := !strings.EqualFold(os.Getenv("SPACECORE_SEED"), "false")
	switch StorageDriver(driver) {
	case StorageMemory:
		store := memory.NewStore(engine)
		if seed {
			if err := store.ImportState(memory.DefaultSnapshot()); err != nil {
				return nil, fmt.Errorf("seed memory store: %w", err)
			}
		}
		return store, nil
	case StorageSQLite:
		store, err := sqlite.NewStore(os.Getenv("SPACECORE_SQLITE_PATH"), engine)
		if err != nil {
			return nil, err
		}
		if seed && store.ExportState().Empty() {
			if err := store.Seed(memory.DefaultSnapshot()); err != nil {
				return nil, fmt.Errorf("seed sqlite store: %w", err)
			}
		}
		return store, nil
	case StoragePostgres:
		store, err := postgres.NewStore(os.Getenv("SPACECORE_POSTGRES_DSN"), engine)
		if err != nil {
			return nil, err
		}
		if seed && store.ExportState().Empty() {
			if err := store.Seed(context.Background(), memory.DefaultSnapshot()); err != nil {
				return nil, fmt.Errorf("seed postgres store: %w", err)
			}
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
