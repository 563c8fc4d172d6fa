// Package randutil centralises how seeded random sources are built so that
// deals, penalty rolls and shop sampling are replayable from a single seed.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// Source is the subset of *rand.Rand the game logic draws from.
type Source interface {
	IntN(n int) int
	Float64() float64
}

// New returns a *rand.Rand seeded deterministically from seed. A zero seed
// falls back to the wall clock.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Derive returns the seed for the n-th child stream of base, used to give
// parallel games independent but reproducible sources.
func Derive(base int64, n int) int64 {
	return int64(mix(uint64(base) + uint64(n)*goldenRatio64))
}

// splitmix64 finaliser
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
