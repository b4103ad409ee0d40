package store

import (
	"context"
	"fmt"

	"github.com/ablecorp/abuelo/internal/config"
	"github.com/ablecorp/abuelo/internal/logger"
)

// Storages aggregates all repositories backed by the single shared database
// connection. It is the unit of injection for the service layer.
type Storages struct {
	DB                *DB
	AccountRepository AccountRepository
	HandleRepository  HandleRepository
}

// NewStorages connects to the configured backend, applies pending migrations
// and wires up the repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	var db *DB
	var err error

	switch cfg.DB.Driver {
	case "pgx":
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	case "sqlite3":
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	default:
		return nil, fmt.Errorf("unknown database driver: %q", cfg.DB.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	return &Storages{
		DB:                db,
		AccountRepository: NewAccountRepository(db, log),
		HandleRepository:  NewHandleRepository(db, log),
	}, nil
}
