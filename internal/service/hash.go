package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strconv"
	"time"
)

// creationTimeLayout truncates the account creation time to minute
// granularity before it enters the digest. The truncation is part of the
// stored hash format: verification recomputes the digest from the persisted
// creation time, so the exact layout must never change.
const creationTimeLayout = "2006-01-02-15-04"

// HashPassword computes the deterministic password digest for an account:
// SHA-256 fed, in order, the raw password bytes, the UTC creation time
// formatted to minute granularity, and the decimal string of the salt nonce.
// The result is the hex-encoded digest.
//
// CreatedAt and saltNonce together make the input unpredictable per account,
// so identical passwords on different accounts produce unrelated digests.
func HashPassword(password string, createdAt time.Time, saltNonce uint64) string {
	hasher := sha256.New()
	hasher.Write([]byte(password))
	hasher.Write([]byte(createdAt.UTC().Format(creationTimeLayout)))
	hasher.Write([]byte(strconv.FormatUint(saltNonce, 10)))

	return hex.EncodeToString(hasher.Sum(nil))
}

// digestsEqual compares two hex digests in constant time.
func digestsEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
