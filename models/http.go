package models

// CredentialsRequest is the request body shared by the register, auth and
// handle-mint endpoints. The password travels in plaintext inside the
// request body; hashing happens server-side only.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// DeleteHandleRequest asks for removal of a single handle. The credentials
// are re-verified before the handle is touched, so a stolen handle value
// alone is not enough to delete it.
type DeleteHandleRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Handle   uint64 `json:"handle"`
}
