package models

// Handle is an opaque 64-bit session token bound to exactly one account.
// A handle is minted after a successful login and authorizes subsequent
// handle-scoped actions until its owner deletes it.
type Handle struct {
	// Value is the globally unique 64-bit token. Values are drawn at
	// random and are never reused within a store lifetime.
	Value uint64 `json:"handle"`

	// UserID is the account the handle authenticates as.
	UserID int64 `json:"-"`
}

// TableName returns the name of the database table
// associated with the Handle model.
func (h Handle) TableName() string {
	return "handles"
}
