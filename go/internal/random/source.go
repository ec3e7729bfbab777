// Package random provides the single seedable randomness source
// threaded through every probabilistic decision in the core.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Source is the subset of math/rand used by the core. *rand.Rand
// satisfies it directly; tests substitute fixed-value stubs to force
// specific branches.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// New returns a deterministic Source for the given seed.
func New(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
