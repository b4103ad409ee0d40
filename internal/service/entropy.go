package service

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// Source supplies the random 64-bit values the services consume: salt nonces
// at account creation and handle candidates during minting. It is injected so
// tests can script the values and force a handle collision deterministically.
type Source interface {
	Uint64() (uint64, error)
}

// cryptoSource reads from the operating system CSPRNG via crypto/rand.
type cryptoSource struct{}

// NewCryptoSource returns the production entropy source backed by crypto/rand.
func NewCryptoSource() Source {
	return cryptoSource{}
}

func (cryptoSource) Uint64() (uint64, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("error reading entropy: %w", err)
	}

	return binary.BigEndian.Uint64(buf[:]), nil
}
