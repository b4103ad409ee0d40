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

// accountRepository is the SQL-backed implementation of [AccountRepository].
// It handles account creation and lookup against the "accounts" table and
// works unchanged on both supported backends; everything driver-specific is
// delegated to the [DB]'s statement builder and error classifier.
type accountRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAccountRepository constructs an [AccountRepository] backed by the
// provided database connection and logger.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

// CreateAccount persists a new account record and returns the fully populated
// [models.Account] with the server-assigned UserID.
//
// The INSERT carries a RETURNING clause so the caller receives the canonical
// database representation of the newly created account. There is no
// application-level pre-check for a taken username: the UNIQUE constraint on
// accounts.username is the authoritative guard, which keeps concurrent
// writers safe without locking.
//
// Error handling:
//   - unique-constraint violation → [ErrUsernameTaken].
//   - any other driver-level error → wrapped [ErrStoreUnavailable].
func (r *accountRepository) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Insert(account.TableName()).
		Columns("username", "password_hash", "creation_time", "premium", "salt_nonce").
		Values(account.Username, account.PasswordHash, account.CreatedAt, account.Premium, int64(account.SaltNonce)).
		Suffix("RETURNING user_id").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.CreateAccount").Msg("error: building query")
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)

	if err := row.Scan(&account.UserID); err != nil {
		log.Err(err).Str("func", "*accountRepository.CreateAccount").Msg("error: inserting account")

		if r.db.classifier.IsUniqueViolation(err) {
			return models.Account{}, ErrUsernameTaken
		}
		return models.Account{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return account, nil
}

// FindAccountByUsername retrieves the account record whose username matches
// exactly (usernames are case-sensitive).
//
// Error handling:
//   - no matching row → [ErrNotFound].
//   - any other driver-level error → wrapped [ErrStoreUnavailable].
func (r *accountRepository) FindAccountByUsername(ctx context.Context, username string) (models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select("user_id", "username", "password_hash", "creation_time", "premium", "salt_nonce").
		From(models.Account{}.TableName()).
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.FindAccountByUsername").Msg("error: building query")
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var foundAccount models.Account
	var saltNonce int64

	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(
		&foundAccount.UserID,
		&foundAccount.Username,
		&foundAccount.PasswordHash,
		&foundAccount.CreatedAt,
		&foundAccount.Premium,
		&saltNonce,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrNotFound
		}

		log.Err(err).Str("func", "*accountRepository.FindAccountByUsername").Msg("error: scanning account")
		return models.Account{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	foundAccount.SaltNonce = uint64(saltNonce)

	return foundAccount, nil
}
