package store

import (
	"context"

	"github.com/ablecorp/abuelo/models"
)

// AccountRepository is the persistence contract of the credential store.
type AccountRepository interface {
	// CreateAccount persists account and returns it with server-assigned
	// fields populated. Returns [ErrUsernameTaken] on a username collision
	// and a wrapped [ErrStoreUnavailable] on any other driver failure.
	CreateAccount(ctx context.Context, account models.Account) (models.Account, error)

	// FindAccountByUsername looks up an account by its unique username.
	// Returns [ErrNotFound] when no such account exists and a wrapped
	// [ErrStoreUnavailable] on driver failures.
	FindAccountByUsername(ctx context.Context, username string) (models.Account, error)
}

// HandleRepository is the persistence contract of the handle allocator.
type HandleRepository interface {
	// InsertHandle registers (value, owner). Returns [ErrHandleExists] when
	// the value is already issued, leaving the table untouched, and a
	// wrapped [ErrStoreUnavailable] on any other driver failure.
	InsertHandle(ctx context.Context, handle models.Handle) error

	// HandlesForAccount returns every handle owned by userID, in insertion
	// order. An account without handles yields an empty slice, not an error.
	HandlesForAccount(ctx context.Context, userID int64) ([]models.Handle, error)

	// IsOwnedBy reports whether a handle with this exact value exists AND
	// belongs to userID. Missing and foreign handles both answer false.
	IsOwnedBy(ctx context.Context, value uint64, userID int64) (bool, error)

	// DeleteHandle removes the handle only if (value, userID) match.
	// Reports whether a row was actually removed; deleting an absent or
	// foreign handle is not an error.
	DeleteHandle(ctx context.Context, value uint64, userID int64) (bool, error)
}
