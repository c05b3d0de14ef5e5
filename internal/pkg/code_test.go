package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandDigits(t *testing.T) {
	code, err := RandDigits(6)
	require.NoError(t, err)
	require.Len(t, code, 6)
	for _, c := range code {
		assert.True(t, c >= '0' && c <= '9', "unexpected character %q", c)
	}
}

func TestRandDigitsVaries(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		code, err := RandDigits(6)
		require.NoError(t, err)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 1)
}
