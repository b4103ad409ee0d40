package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource replays a fixed sequence of values, then keeps returning the
// last one. It lets tests force a handle collision deterministically.
type scriptedSource struct {
	values []uint64
	next   int
	err    error
}

func (s *scriptedSource) Uint64() (uint64, error) {
	if s.err != nil {
		return 0, s.err
	}

	v := s.values[s.next]
	if s.next < len(s.values)-1 {
		s.next++
	}
	return v, nil
}

func TestCryptoSource_ProducesVaryingValues(t *testing.T) {
	src := NewCryptoSource()

	seen := make(map[uint64]bool)
	for i := 0; i < 8; i++ {
		v, err := src.Uint64()
		require.NoError(t, err)
		seen[v] = true
	}

	// eight identical CSPRNG reads would mean the source is broken
	assert.Greater(t, len(seen), 1)
}

func TestScriptedSource_ReplaysSequence(t *testing.T) {
	src := &scriptedSource{values: []uint64{1, 2, 3}}

	for _, want := range []uint64{1, 2, 3, 3, 3} {
		got, err := src.Uint64()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}
