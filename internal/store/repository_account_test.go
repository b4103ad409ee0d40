package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ablecorp/abuelo/internal/logger"
	"github.com/ablecorp/abuelo/models"
)

func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	wrapped := &DB{
		DB:         db,
		driver:     "pgx",
		builder:    sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		classifier: NewPostgresErrorClassifier(),
		logger:     l,
	}
	return wrapped, mock, db
}

func newTestAccountRepo(t *testing.T) (*accountRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	wrapped, mock, db := newTestDB(t)
	repo := &accountRepository{
		db:     wrapped,
		logger: wrapped.logger,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestCreateAccount_Success(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	ctx := context.Background()
	account := models.Account{
		Username:     "alice",
		PasswordHash: "deadbeef",
		CreatedAt:    time.Now().UTC(),
		SaltNonce:    12345,
	}

	rows := sqlmock.NewRows([]string{"user_id"}).AddRow(1)

	mock.ExpectQuery("INSERT INTO accounts").
		WithArgs(account.Username, account.PasswordHash, account.CreatedAt, account.Premium, int64(account.SaltNonce)).
		WillReturnRows(rows)

	created, err := repo.CreateAccount(ctx, account)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID != 1 {
		t.Errorf("expected UserID=1, got %d", created.UserID)
	}
	if created.Username != account.Username {
		t.Errorf("expected username %s, got %s", account.Username, created.Username)
	}
}

func TestCreateAccount_UsernameTaken(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO accounts").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateAccount(ctx, models.Account{Username: "alice"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestCreateAccount_StoreUnavailable(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO accounts").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateAccount(ctx, models.Account{Username: "alice"})
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected wrapped ErrStoreUnavailable, got %v", err)
	}
}

func TestFindAccountByUsername_Success(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now().UTC()

	rows := sqlmock.
		NewRows([]string{"user_id", "username", "password_hash", "creation_time", "premium", "salt_nonce"}).
		AddRow(1, "alice", "deadbeef", now, false, int64(12345))

	mock.ExpectQuery("SELECT user_id, username").
		WithArgs("alice").
		WillReturnRows(rows)

	found, err := repo.FindAccountByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Username != "alice" {
		t.Errorf("expected username alice, got %s", found.Username)
	}
	if found.SaltNonce != 12345 {
		t.Errorf("expected salt nonce 12345, got %d", found.SaltNonce)
	}
}

func TestFindAccountByUsername_NotFound(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT user_id, username").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindAccountByUsername(ctx, "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFindAccountByUsername_StoreUnavailable(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT user_id, username").
		WithArgs("alice").
		WillReturnError(errors.New("db failure"))

	_, err := repo.FindAccountByUsername(ctx, "alice")
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected wrapped ErrStoreUnavailable, got %v", err)
	}
}
