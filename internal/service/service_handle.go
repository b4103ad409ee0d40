package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ablecorp/abuelo/internal/logger"
	"github.com/ablecorp/abuelo/internal/store"
	"github.com/ablecorp/abuelo/models"
)

// mintRetryWarnThreshold is the attempt count past which the mint loop starts
// warning. With a 64-bit candidate space, repeated collisions point at a
// broken entropy source or corrupted handle state, not at bad luck.
const mintRetryWarnThreshold = 10

// handleService is the concrete implementation of [HandleService].
type handleService struct {
	// handleRepository is the data-access layer for the handles table.
	handleRepository store.HandleRepository

	// entropy supplies the random handle candidates.
	entropy Source

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewHandleService constructs a [HandleService] wired to the given repository
// and entropy source.
func NewHandleService(handleRepository store.HandleRepository, entropy Source, logger *logger.Logger) HandleService {
	return &handleService{
		handleRepository: handleRepository,
		entropy:          entropy,
		logger:           logger,
	}
}

// Mint issues a fresh handle owned by account.
//
// A random 64-bit candidate is registered against the handles table; the
// table's UNIQUE constraint detects collisions without consuming the value,
// and a colliding candidate is simply replaced by a new random one. The loop
// has no retry limit: collision probability in a 64-bit space is governed by
// the birthday bound and is negligible at any realistic handle count.
//
// Only a persistence failure aborts the loop — store.ErrStoreUnavailable is
// surfaced immediately, never retried as if it were a collision.
func (h *handleService) Mint(ctx context.Context, account models.Account) (models.Handle, error) {
	log := logger.FromContext(ctx)

	for attempt := 1; ; attempt++ {
		candidate, err := h.entropy.Uint64()
		if err != nil {
			log.Err(err).Str("func", "*handleService.Mint").Msg("error generating handle candidate")
			return models.Handle{}, fmt.Errorf("error generating handle candidate: %w", err)
		}

		handle := models.Handle{Value: candidate, UserID: account.UserID}

		err = h.handleRepository.InsertHandle(ctx, handle)
		if err == nil {
			return handle, nil
		}

		if errors.Is(err, store.ErrHandleExists) {
			if attempt >= mintRetryWarnThreshold {
				log.Warn().
					Int("attempts", attempt).
					Int64("user_id", account.UserID).
					Msg("handle minting keeps colliding; suspect entropy source or handle state")
			}
			continue
		}

		log.Err(err).Str("func", "*handleService.Mint").Msg("handle registration failed")
		return models.Handle{}, fmt.Errorf("handle registration failed: %w", err)
	}
}

// HandlesForAccount returns every handle owned by userID. An account without
// handles yields an empty slice.
func (h *handleService) HandlesForAccount(ctx context.Context, userID int64) ([]models.Handle, error) {
	handles, err := h.handleRepository.HandlesForAccount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing handles failed: %w", err)
	}

	return handles, nil
}

// IsOwnedBy reports whether the handle with this value exists and belongs to
// userID.
func (h *handleService) IsOwnedBy(ctx context.Context, value uint64, userID int64) (bool, error) {
	owned, err := h.handleRepository.IsOwnedBy(ctx, value, userID)
	if err != nil {
		return false, fmt.Errorf("handle ownership check failed: %w", err)
	}

	return owned, nil
}

// Delete removes the handle when (value, userID) match and reports whether a
// row was removed.
func (h *handleService) Delete(ctx context.Context, value uint64, userID int64) (bool, error) {
	removed, err := h.handleRepository.DeleteHandle(ctx, value, userID)
	if err != nil {
		return false, fmt.Errorf("handle deletion failed: %w", err)
	}

	return removed, nil
}
