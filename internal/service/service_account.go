package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ablecorp/abuelo/internal/logger"
	"github.com/ablecorp/abuelo/internal/store"
	"github.com/ablecorp/abuelo/models"
)

// accountService is the concrete implementation of [AccountService].
// It owns the password hashing and verification algorithm and delegates
// persistence to an [store.AccountRepository].
type accountService struct {
	// accountRepository is the data-access layer used to create and look
	// up accounts.
	accountRepository store.AccountRepository

	// entropy supplies the per-account random salt nonce.
	entropy Source

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAccountService constructs an [AccountService] wired to the given
// repository and entropy source.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAccountService(accountRepository store.AccountRepository, entropy Source, logger *logger.Logger) AccountService {
	return &accountService{
		accountRepository: accountRepository,
		entropy:           entropy,
		logger:            logger,
	}
}

// CreateAccount registers a new account.
//
// The creation time is fixed to now (UTC) and a fresh random salt nonce is
// drawn; both become immutable salt material of the password digest. The
// plaintext password is hashed here and never reaches the repository.
//
// Returns the persisted account (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided if username is empty.
//   - store.ErrUsernameTaken (wrapped) if the username is already in use.
//   - a wrapped store error on persistence failure.
func (a *accountService) CreateAccount(ctx context.Context, username, password string) (models.Account, error) {
	log := logger.FromContext(ctx)

	if username == "" {
		log.Error().Msg("empty username provided")
		return models.Account{}, ErrInvalidDataProvided
	}

	saltNonce, err := a.entropy.Uint64()
	if err != nil {
		log.Err(err).Str("func", "*accountService.CreateAccount").Msg("error generating salt nonce")
		return models.Account{}, fmt.Errorf("error generating salt nonce: %w", err)
	}

	createdAt := time.Now().UTC()
	account := models.Account{
		Username:     username,
		PasswordHash: HashPassword(password, createdAt, saltNonce),
		CreatedAt:    createdAt,
		Premium:      false,
		SaltNonce:    saltNonce,
	}

	createdAccount, err := a.accountRepository.CreateAccount(ctx, account)
	if err != nil {
		log.Err(err).Str("username", username).Msg("account creation ended with error")
		return models.Account{}, fmt.Errorf("account creation ended with error: %w", err)
	}

	return createdAccount, nil
}

// VerifyLogin checks the supplied credentials against the stored digest.
//
// The stored creation time and salt nonce are combined with the supplied
// password exactly as at registration, and the digests are compared in
// constant time. An unknown username and a wrong password are both reported
// as a plain false so the two cases are indistinguishable to callers.
//
// The error is non-nil only when the store itself failed; a failed login is
// never an error.
func (a *accountService) VerifyLogin(ctx context.Context, username, password string) (bool, error) {
	log := logger.FromContext(ctx)

	foundAccount, err := a.accountRepository.FindAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}

		log.Err(err).Str("username", username).Msg("account lookup for login failed")
		return false, fmt.Errorf("account lookup for login failed: %w", err)
	}

	recomputed := HashPassword(password, foundAccount.CreatedAt, foundAccount.SaltNonce)

	return digestsEqual(recomputed, foundAccount.PasswordHash), nil
}

// GetAccount looks up an account by username.
//
// Every retrieval failure surfaces as store.ErrNotFound: the public contract
// of account lookup is a single error kind wide, and store-internal failures
// are collapsed into it after being logged.
func (a *accountService) GetAccount(ctx context.Context, username string) (models.Account, error) {
	log := logger.FromContext(ctx)

	foundAccount, err := a.accountRepository.FindAccountByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Err(err).Str("username", username).Msg("account lookup failed; collapsing to not found")
		}

		return models.Account{}, store.ErrNotFound
	}

	return foundAccount, nil
}
