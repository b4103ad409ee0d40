package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/ablecorp/abuelo/internal/logger"
	"github.com/ablecorp/abuelo/models"
)

// handleRepository is the SQL-backed implementation of [HandleRepository].
//
// Handle values are uint64 in the domain model but database/sql and both
// drivers only carry signed 64-bit integers, so values are persisted as their
// bit-identical int64 twin. The conversion never leaves this file.
type handleRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewHandleRepository constructs a [HandleRepository] backed by the provided
// database connection and logger.
func NewHandleRepository(db *DB, logger *logger.Logger) HandleRepository {
	logger.Debug().Msg("creating handle repository")
	return &handleRepository{
		db:     db,
		logger: logger,
	}
}

// InsertHandle registers (value, owner) in the handles table.
//
// The UNIQUE constraint on handle_value is the collision detector for the
// allocator's mint loop: a violated constraint consumes nothing and maps to
// [ErrHandleExists], which the caller treats as "pick another candidate".
// Every other driver failure is wrapped as [ErrStoreUnavailable] and must
// abort the loop.
func (r *handleRepository) InsertHandle(ctx context.Context, handle models.Handle) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Insert(handle.TableName()).
		Columns("handle_value", "user_id").
		Values(int64(handle.Value), handle.UserID).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*handleRepository.InsertHandle").Msg("error: building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if r.db.classifier.IsUniqueViolation(err) {
			return ErrHandleExists
		}

		log.Err(err).Str("func", "*handleRepository.InsertHandle").Msg("error: inserting handle")
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return nil
}

// HandlesForAccount returns every handle currently owned by userID in
// insertion order. The order is a convenience, not a contract.
func (r *handleRepository) HandlesForAccount(ctx context.Context, userID int64) ([]models.Handle, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select("handle_value", "user_id").
		From(models.Handle{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("handle_id").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*handleRepository.HandlesForAccount").Msg("error: building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*handleRepository.HandlesForAccount").Msg("error: querying handles")
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	handles := make([]models.Handle, 0)
	for rows.Next() {
		var value int64
		var handle models.Handle

		if err := rows.Scan(&value, &handle.UserID); err != nil {
			log.Err(err).Str("func", "*handleRepository.HandlesForAccount").Msg("error: scanning handle row")
			return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}

		handle.Value = uint64(value)
		handles = append(handles, handle)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*handleRepository.HandlesForAccount").Msg("error: iterating handle rows")
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return handles, nil
}

// IsOwnedBy reports whether a handle with this exact value exists and belongs
// to userID. A missing handle and a handle owned by someone else both answer
// false; callers that need to tell them apart must do a separate lookup.
func (r *handleRepository) IsOwnedBy(ctx context.Context, value uint64, userID int64) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select("handle_value").
		From(models.Handle{}.TableName()).
		Where(sq.Eq{"handle_value": int64(value), "user_id": userID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*handleRepository.IsOwnedBy").Msg("error: building query")
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var found int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&found); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		log.Err(err).Str("func", "*handleRepository.IsOwnedBy").Msg("error: querying handle ownership")
		return false, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return true, nil
}

// DeleteHandle removes the handle only when both value and owner match.
// It reports whether a row was removed; an absent or foreign (value, owner)
// pair yields (false, nil) so deletion stays idempotent for callers.
func (r *handleRepository) DeleteHandle(ctx context.Context, value uint64, userID int64) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Delete(models.Handle{}.TableName()).
		Where(sq.Eq{"handle_value": int64(value), "user_id": userID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*handleRepository.DeleteHandle").Msg("error: building query")
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*handleRepository.DeleteHandle").Msg("error: deleting handle")
		return false, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*handleRepository.DeleteHandle").Msg("error: reading affected rows")
		return false, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return rowsAffected > 0, nil
}
