package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandIntn(t *testing.T) {
	for i := 0; i < 100; i++ {
		n := RandIntn(10)
		require.GreaterOrEqual(t, n, 0)
		require.Less(t, n, 10)
	}

	require.Zero(t, RandIntn(1))
}

func TestRandRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		n := RandRange(5, 8)
		require.GreaterOrEqual(t, n, 5)
		require.Less(t, n, 8)
	}
}

func TestShuffle(t *testing.T) {
	values := []string{"a", "b", "c", "d", "e"}

	Shuffle(values, 3)
	require.ElementsMatch(t, []string{"a", "b", "c", "d", "e"}, values)

	// k beyond the slice length is a full shuffle, not a panic.
	Shuffle(values, 10)
	require.ElementsMatch(t, []string{"a", "b", "c", "d", "e"}, values)

	// Every element must be reachable for the first position.
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		values := []string{"a", "b", "c", "d", "e"}
		Shuffle(values, 1)
		seen[values[0]] = true
	}
	require.Len(t, seen, 5)
}
