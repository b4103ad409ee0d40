package models

import "time"

// Account represents a registered user of the service.
// It carries identity attributes and the credential material needed to
// verify logins. Sensitive fields must never be exposed outside trusted
// boundaries.
type Account struct {
	// UserID is the internal unique identifier of the account,
	// assigned by the database at creation time.
	UserID int64 `json:"-"`

	// Username is the unique, case-sensitive login name.
	// It is immutable after creation.
	Username string `json:"username"`

	// PasswordHash is the hex-encoded SHA-256 digest of the password
	// combined with the account's salt material. Never plaintext and
	// never exposed via JSON.
	PasswordHash string `json:"-"`

	// CreatedAt is the UTC timestamp fixed at account creation.
	// Its minute-truncated form is part of the password hash input,
	// so it must never be mutated.
	CreatedAt time.Time `json:"creation_time"`

	// Premium marks donator accounts. It is toggled by the billing
	// collaborator, never by this service. Defaults to false.
	Premium bool `json:"premium"`

	// SaltNonce is a random 64-bit value generated once at creation and
	// mixed into the password hash. Immutable, never exposed via JSON.
	SaltNonce uint64 `json:"-"`
}

// TableName returns the name of the database table
// associated with the Account model.
func (a Account) TableName() string {
	return "accounts"
}
