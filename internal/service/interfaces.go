package service

import (
	"context"

	"github.com/ablecorp/abuelo/models"
)

// AccountService is the credential store of the application: it owns account
// creation, login verification and account lookup.
type AccountService interface {
	// CreateAccount registers a new account for username with the given
	// plaintext password. The password is hashed before it ever reaches
	// the repository. Returns ErrInvalidDataProvided for an empty
	// username, store.ErrUsernameTaken on a username collision, or a
	// wrapped store error.
	CreateAccount(ctx context.Context, username, password string) (models.Account, error)

	// VerifyLogin reports whether (username, password) names an existing
	// account with a matching password. Unknown usernames and wrong
	// passwords are both a plain false so callers cannot enumerate
	// accounts. The error is non-nil only when the store is unavailable.
	VerifyLogin(ctx context.Context, username, password string) (bool, error)

	// GetAccount looks up an account by username. Every failure surfaces
	// as store.ErrNotFound to keep the public contract one error wide.
	GetAccount(ctx context.Context, username string) (models.Account, error)
}

// HandleService is the handle allocator: it mints collision-free session
// handles bound to an account and manages their lifecycle.
type HandleService interface {
	// Mint issues a fresh handle owned by account. Colliding candidates
	// are retried with new random values until an unused one is found;
	// only a persistence failure aborts the loop.
	Mint(ctx context.Context, account models.Account) (models.Handle, error)

	// HandlesForAccount returns every handle owned by userID.
	HandlesForAccount(ctx context.Context, userID int64) ([]models.Handle, error)

	// IsOwnedBy reports whether the handle with this value exists and is
	// owned by userID.
	IsOwnedBy(ctx context.Context, value uint64, userID int64) (bool, error)

	// Delete removes the handle when (value, userID) match and reports
	// whether anything was removed. Idempotent.
	Delete(ctx context.Context, value uint64, userID int64) (bool, error)
}
