package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/ablecorp/abuelo/internal/logger"
	"github.com/ablecorp/abuelo/migrations"
)

// DB wraps the shared *sql.DB connection together with the pieces that differ
// between backends: the driver name (for migrations), the statement builder
// (placeholder format) and the driver error classifier.
type DB struct {
	*sql.DB
	driver     string
	builder    sq.StatementBuilderType
	classifier ErrorClassifier
	logger     *logger.Logger
}

// Migrate applies all pending schema migrations for the connected backend.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}
