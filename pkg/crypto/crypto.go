package crypto

import (
	"crypto/rand"
	"math/big"
)

// RandIntn returns a uniform random value in [0, n). It panics if got a
// non-positive parameter.
func RandIntn(n int) int {
	r, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(r.Int64())
}

// RandRange returns a uniform random value in [a, b). It panics if got a
// non-positive parameter or a>=b.
func RandRange(a, b int) int {
	return RandIntn(b-a) + a
}

// Shuffle rearranges the first k elements of values so that every
// k-subset of values is equally likely to occupy them. It is a partial
// Fisher-Yates driven by crypto/rand.
func Shuffle[T any](values []T, k int) {
	for i := 0; i < k && i < len(values)-1; i++ {
		j := RandRange(i, len(values))
		values[i], values[j] = values[j], values[i]
	}
}
