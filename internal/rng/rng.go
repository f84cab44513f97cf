// Package rng provides the seeded pseudo-random generator that drives level
// generation. Every value it yields is a pure function of the seed string.
package rng

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
	"unicode/utf16"
)

// DefaultSeed is used when the supplied seed string is blank.
const DefaultSeed = "wanderer"

// ErrInvalidArgument is returned for malformed generator parameters such as a
// non-positive bound or an empty choice set.
var ErrInvalidArgument = errors.New("invalid argument")

// RNG is a Mulberry32 stream seeded from an xmur3 hash of the seed string.
type RNG struct {
	seedString string
	seed       uint32
	state      uint32
}

// NormalizeSeed trims the seed string, substitutes DefaultSeed when it is
// empty and returns the 32-bit hash used to seed the stream.
func NormalizeSeed(seedString string) (string, uint32) {
	trimmed := strings.TrimSpace(seedString)
	if trimmed == "" {
		trimmed = DefaultSeed
	}
	return trimmed, xmur3(trimmed)
}

// FromSeed creates a generator for the given seed string.
func FromSeed(seedString string) *RNG {
	normalized, seed := NormalizeSeed(seedString)
	return &RNG{
		seedString: normalized,
		seed:       seed,
		state:      seed,
	}
}

// SeedString returns the normalized seed string.
func (r *RNG) SeedString() string {
	return r.seedString
}

// Seed returns the numeric seed derived from the seed string.
func (r *RNG) Seed() uint32 {
	return r.seed
}

// Next returns a float in [0, 1).
func (r *RNG) Next() float64 {
	r.state += 0x6d2b79f5
	t := r.state
	v := (t ^ (t >> 15)) * (t | 1)
	v ^= v + (v^(v>>7))*(v|61)
	return float64(v^(v>>14)) / 4294967296.0
}

// NextInt returns an integer in [0, n).
func (r *RNG) NextInt(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: bound must be positive, got %d", ErrInvalidArgument, n)
	}
	return int(r.Next() * float64(n)), nil
}

// MustNextInt is NextInt for callers that guarantee n > 0. It panics otherwise.
func (r *RNG) MustNextInt(n int) int {
	v, err := r.NextInt(n)
	if err != nil {
		panic(err)
	}
	return v
}

// NextRange returns a float in [min, max), or min when max <= min.
func (r *RNG) NextRange(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + r.Next()*(max-min)
}

// Pick returns a uniformly chosen element of list.
func Pick[T any](r *RNG, list []T) (T, error) {
	var zero T
	if len(list) == 0 {
		return zero, fmt.Errorf("%w: cannot pick from empty list", ErrInvalidArgument)
	}
	return list[int(r.Next()*float64(len(list)))], nil
}

// MustPick is Pick for callers that guarantee a non-empty list.
func MustPick[T any](r *RNG, list []T) T {
	v, err := Pick(r, list)
	if err != nil {
		panic(err)
	}
	return v
}

// Shuffle permutes list in place with a backward Fisher-Yates pass.
func Shuffle[T any](r *RNG, list []T) {
	for i := len(list) - 1; i > 0; i-- {
		j := int(r.Next() * float64(i+1))
		list[i], list[j] = list[j], list[i]
	}
}

// xmur3 hashes the UTF-16 code units of s into a single 32-bit value.
func xmur3(s string) uint32 {
	units := utf16.Encode([]rune(s))
	h := uint32(1779033703) ^ uint32(len(units))
	for _, u := range units {
		h = (h ^ uint32(u)) * 3432918353
		h = bits.RotateLeft32(h, 13)
	}
	h = (h ^ (h >> 16)) * 2246822507
	h = (h ^ (h >> 13)) * 3266489909
	h ^= h >> 16
	return h
}
