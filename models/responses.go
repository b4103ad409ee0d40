package models

import "time"

// The API answers every handled request with HTTP 200 and signals the
// outcome through the success/message pair of the response envelope.
// Optional payload fields are omitted when the request failed.

// CreateAccountResponse is the envelope returned by POST /user/create.
type CreateAccountResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AuthResponse is the envelope returned by POST /user/auth and
// POST /user/handle/create. Handle carries the freshly minted session
// token on success.
type AuthResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Handle  *uint64 `json:"handle"`
}

// AccountResponse is the envelope returned by GET /user/{username}.
// Only non-sensitive account attributes are exposed.
type AccountResponse struct {
	Success      bool       `json:"success"`
	Message      string     `json:"message"`
	CreationTime *time.Time `json:"creation_time"`
	Premium      *bool      `json:"premium"`
}

// HandlesResponse is the envelope returned by GET /user/{username}/handles.
type HandlesResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Handles []uint64 `json:"handles"`
}
