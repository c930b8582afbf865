package util

import (
	"time"

	"golang.org/x/exp/rand"
)

// Seed returns seed, or a fresh seed from the clock when seed is 0.
func Seed(seed uint64) uint64 {
	if seed != 0 {
		return seed
	}
	return uint64(time.Now().UnixNano())
}

// NewSource returns an independent random source for one pricing request.
func NewSource(seed uint64) rand.Source {
	return rand.NewSource(seed)
}

// RandomFloat draws from [min, max) using src.
func RandomFloat(src rand.Source, min, max float64) float64 {
	return min + rand.New(src).Float64()*(max-min)
}
