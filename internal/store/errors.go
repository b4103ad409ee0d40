package store

import "errors"

// Sentinel errors shared by both repositories. They form the single error
// taxonomy of the persistence layer; callers match them with [errors.Is].
// The account and handle repositories translate driver-level failures into
// these values at the store boundary so no caller ever inspects driver errors.
var (
	// ErrUsernameTaken is returned when account creation collides with an
	// existing username. The UNIQUE constraint on accounts.username is the
	// authoritative guard; there is no application-level pre-check.
	ErrUsernameTaken = errors.New("username is already taken")

	// ErrNotFound is returned when a lookup by username or handle value
	// produces no match.
	ErrNotFound = errors.New("record was not found")

	// ErrHandleExists is returned when handle registration collides with an
	// already-issued handle value. It never escapes the handle service:
	// the mint loop consumes it and retries with a fresh candidate.
	ErrHandleExists = errors.New("handle value already exists")

	// ErrStoreUnavailable is returned when the persistence layer fails for
	// reasons unrelated to logical constraints (connection loss, disk).
	// It is always surfaced and never silently retried.
	ErrStoreUnavailable = errors.New("store is unavailable")
)

// Low-level database operation errors.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails before it reaches the database.
	ErrBuildingSQLQuery = errors.New("error building sql query")
)
