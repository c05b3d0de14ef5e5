package redis

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	require.NoError(t, Init(mr.Addr(), "", 0))
	t.Cleanup(func() { _ = Close() })
	return mr
}
