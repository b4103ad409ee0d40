package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ablecorp/abuelo/internal/logger"
	"github.com/ablecorp/abuelo/internal/store"
	"github.com/ablecorp/abuelo/models"
)

// mockHandleRepository implements store.HandleRepository for unit tests.
// Each method field can be overridden per test case.
type mockHandleRepository struct {
	insertHandleFn      func(ctx context.Context, handle models.Handle) error
	handlesForAccountFn func(ctx context.Context, userID int64) ([]models.Handle, error)
	isOwnedByFn         func(ctx context.Context, value uint64, userID int64) (bool, error)
	deleteHandleFn      func(ctx context.Context, value uint64, userID int64) (bool, error)
}

func (m *mockHandleRepository) InsertHandle(ctx context.Context, handle models.Handle) error {
	return m.insertHandleFn(ctx, handle)
}

func (m *mockHandleRepository) HandlesForAccount(ctx context.Context, userID int64) ([]models.Handle, error) {
	return m.handlesForAccountFn(ctx, userID)
}

func (m *mockHandleRepository) IsOwnedBy(ctx context.Context, value uint64, userID int64) (bool, error) {
	return m.isOwnedByFn(ctx, value, userID)
}

func (m *mockHandleRepository) DeleteHandle(ctx context.Context, value uint64, userID int64) (bool, error) {
	return m.deleteHandleFn(ctx, value, userID)
}

func TestMint_BindsOwner(t *testing.T) {
	ctx := context.Background()

	var inserted models.Handle
	repo := &mockHandleRepository{
		insertHandleFn: func(ctx context.Context, handle models.Handle) error {
			inserted = handle
			return nil
		},
	}
	svc := NewHandleService(repo, &scriptedSource{values: []uint64{12345}}, logger.Nop())

	handle, err := svc.Mint(ctx, models.Account{UserID: 7, Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, uint64(12345), handle.Value)
	assert.Equal(t, int64(7), handle.UserID)
	assert.Equal(t, inserted, handle)
}

// A colliding candidate must be replaced by a fresh draw, never retried
// verbatim and never surfaced to the caller.
func TestMint_RetriesOnCollision(t *testing.T) {
	ctx := context.Background()

	taken := map[uint64]bool{42: true}
	var attempts []uint64
	repo := &mockHandleRepository{
		insertHandleFn: func(ctx context.Context, handle models.Handle) error {
			attempts = append(attempts, handle.Value)
			if taken[handle.Value] {
				return store.ErrHandleExists
			}
			taken[handle.Value] = true
			return nil
		},
	}
	svc := NewHandleService(repo, &scriptedSource{values: []uint64{42, 42, 99}}, logger.Nop())

	handle, err := svc.Mint(ctx, models.Account{UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, uint64(99), handle.Value)
	assert.Equal(t, []uint64{42, 42, 99}, attempts)
}

// Past ten colliding attempts the loop starts warning that something is
// wrong with the entropy source, while still retrying until a fresh value
// lands.
func TestMint_WarnsAfterRepeatedCollisions(t *testing.T) {
	var logs bytes.Buffer
	ctx := zerolog.New(&logs).WithContext(context.Background())

	values := make([]uint64, 0, 12)
	for i := 0; i < 11; i++ {
		values = append(values, 42)
	}
	values = append(values, 99)

	inserts := 0
	repo := &mockHandleRepository{
		insertHandleFn: func(_ context.Context, handle models.Handle) error {
			inserts++
			if handle.Value == 42 {
				return store.ErrHandleExists
			}
			return nil
		},
	}
	svc := NewHandleService(repo, &scriptedSource{values: values}, logger.Nop())

	handle, err := svc.Mint(ctx, models.Account{UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, uint64(99), handle.Value)
	assert.Equal(t, 12, inserts)

	assert.Contains(t, logs.String(), "keeps colliding")
	assert.Contains(t, logs.String(), `"attempts":10`)
}

func TestMint_AbortsOnStoreFailure(t *testing.T) {
	ctx := context.Background()

	calls := 0
	repo := &mockHandleRepository{
		insertHandleFn: func(ctx context.Context, handle models.Handle) error {
			calls++
			return store.ErrStoreUnavailable
		},
	}
	svc := NewHandleService(repo, &scriptedSource{values: []uint64{42}}, logger.Nop())

	_, err := svc.Mint(ctx, models.Account{UserID: 1})
	require.ErrorIs(t, err, store.ErrStoreUnavailable)
	assert.Equal(t, 1, calls, "a store failure must not be retried")
}

func TestMint_EntropyFailure(t *testing.T) {
	ctx := context.Background()

	repo := &mockHandleRepository{
		insertHandleFn: func(ctx context.Context, handle models.Handle) error {
			t.Fatal("insert must not be reached when entropy fails")
			return nil
		},
	}
	entropyErr := errors.New("entropy exhausted")
	svc := NewHandleService(repo, &scriptedSource{err: entropyErr}, logger.Nop())

	_, err := svc.Mint(ctx, models.Account{UserID: 1})
	require.ErrorIs(t, err, entropyErr)
}

func TestHandlesForAccount(t *testing.T) {
	ctx := context.Background()

	want := []models.Handle{
		{Value: 11, UserID: 3},
		{Value: 22, UserID: 3},
	}
	repo := &mockHandleRepository{
		handlesForAccountFn: func(ctx context.Context, userID int64) ([]models.Handle, error) {
			assert.Equal(t, int64(3), userID)
			return want, nil
		},
	}
	svc := NewHandleService(repo, &scriptedSource{values: []uint64{0}}, logger.Nop())

	got, err := svc.HandlesForAccount(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestHandlesForAccount_StoreFailure(t *testing.T) {
	ctx := context.Background()

	repo := &mockHandleRepository{
		handlesForAccountFn: func(ctx context.Context, userID int64) ([]models.Handle, error) {
			return nil, store.ErrStoreUnavailable
		},
	}
	svc := NewHandleService(repo, &scriptedSource{values: []uint64{0}}, logger.Nop())

	_, err := svc.HandlesForAccount(ctx, 3)
	require.ErrorIs(t, err, store.ErrStoreUnavailable)
}

func TestIsOwnedBy(t *testing.T) {
	ctx := context.Background()

	repo := &mockHandleRepository{
		isOwnedByFn: func(ctx context.Context, value uint64, userID int64) (bool, error) {
			return value == 42 && userID == 3, nil
		},
	}
	svc := NewHandleService(repo, &scriptedSource{values: []uint64{0}}, logger.Nop())

	owned, err := svc.IsOwnedBy(ctx, 42, 3)
	require.NoError(t, err)
	assert.True(t, owned)

	owned, err = svc.IsOwnedBy(ctx, 42, 4)
	require.NoError(t, err)
	assert.False(t, owned)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	deleted := false
	repo := &mockHandleRepository{
		deleteHandleFn: func(ctx context.Context, value uint64, userID int64) (bool, error) {
			if deleted {
				return false, nil
			}
			deleted = value == 42 && userID == 3
			return deleted, nil
		},
	}
	svc := NewHandleService(repo, &scriptedSource{values: []uint64{0}}, logger.Nop())

	removed, err := svc.Delete(ctx, 42, 3)
	require.NoError(t, err)
	assert.True(t, removed)

	// second deletion of the same handle is a no-op, not an error
	removed, err = svc.Delete(ctx, 42, 3)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestDelete_StoreFailure(t *testing.T) {
	ctx := context.Background()

	repo := &mockHandleRepository{
		deleteHandleFn: func(ctx context.Context, value uint64, userID int64) (bool, error) {
			return false, store.ErrStoreUnavailable
		},
	}
	svc := NewHandleService(repo, &scriptedSource{values: []uint64{0}}, logger.Nop())

	_, err := svc.Delete(ctx, 42, 3)
	require.ErrorIs(t, err, store.ErrStoreUnavailable)
}
