// Package random provides the uniform random sources used by automated players.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"

	"golang.org/x/exp/rand"
)

// NewSeed generates a high-entropy seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return binary.LittleEndian.Uint64(b[:]), nil
}

// NewSource returns a PCG backed generator. The same seed yields the same sequence.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// FromConfig uses seed when it is set and a fresh crypto seed otherwise.
func FromConfig(seed uint64) (*rand.Rand, error) {
	if seed != 0 {
		return NewSource(seed), nil
	}

	fresh, err := NewSeed()
	if err != nil {
		return nil, err
	}

	return NewSource(fresh), nil
}
