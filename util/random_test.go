package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	require.Equal(t, uint64(42), Seed(42))
	require.NotZero(t, Seed(0))
}

func TestNewSource(t *testing.T) {
	a, b := NewSource(9), NewSource(9)
	for i := 0; i < 5; i++ {
		require.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestRandomFloat(t *testing.T) {
	src := NewSource(1)
	for i := 0; i < 100; i++ {
		x := RandomFloat(src, 50, 150)
		require.GreaterOrEqual(t, x, 50.0)
		require.Less(t, x, 150.0)
	}
}
